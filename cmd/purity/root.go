// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/config"
	"github.com/awslabs/go-purity/analysis/export"
	"github.com/awslabs/go-purity/analysis/render"
	"github.com/awslabs/go-purity/cmd/purity/tools"
	"github.com/awslabs/go-purity/internal/formatutil"
	"github.com/spf13/cobra"
)

const long = `Infers the purity of the functions declared in Go sources.

A function is Impure if it calls a function known to have side effects or reads a package-level variable, directly
or through the functions it calls. It is Unknown if it depends on a function whose body is not available and that
is not known to be pure, and Pure otherwise.

The input is a file, a list of files (--files), a source text (--string) or package patterns (--packages). Files
given together are analyzed as a single package.`

const examples = `  purity main.go
  purity --files a.go,b.go --verbose
  purity -s 'func f(x int) int { return x + 1 }'
  purity --packages --config=config.yaml --format=json ./...`

// options are the values of the flags of the command
type options struct {
	files      []string
	source     string
	configPath string
	verbose    bool
	format     string
	mode       string
	logLevel   int
	packages   bool
	annotate   bool
	write      bool
	check      bool
	stats      bool
	noColor    bool
	neo4jURI   string
	neo4jUser  string
	neo4jPass  string
	neo4jDB    string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "purity [flags] [file.go ...]",
		Short:         "Infer the purity of the functions of a Go program",
		Long:          long,
		Example:       examples,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasSource := cmd.Flags().Changed("string")
			return runPurity(cmd.Context(), opts, hasSource, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	f := cmd.Flags()
	f.StringSliceVar(&opts.files, "files", nil, "comma separated list of Go files, analyzed as one package")
	f.StringVarP(&opts.source, "string", "s", "", "Go source text to analyze")
	f.StringVar(&opts.configPath, "config", "", "config file path for analysis")
	f.BoolVarP(&opts.verbose, "verbose", "v", false,
		"print the dependencies, the unresolved routines and the statistics of the run")
	f.StringVar(&opts.format, "format", string(render.TextFormat),
		fmt.Sprintf("output format, one of %v", render.Formats))
	f.StringVar(&opts.mode, "mode", "",
		fmt.Sprintf("call graph used to resolve dynamic calls, one of %v (overrides the config)", config.CallgraphModes))
	f.IntVar(&opts.logLevel, "log-level", 0, "log level, from 1 (errors) to 5 (trace) (overrides the config)")
	f.BoolVar(&opts.packages, "packages", false, "the arguments are package patterns loaded with go/packages")
	f.BoolVar(&opts.annotate, "annotate", false,
		"print the sources with a comment stating the purity of each function instead of the results")
	f.BoolVarP(&opts.write, "write", "w", false, "with --annotate, write the annotated sources to their files")
	f.BoolVar(&opts.check, "check", false, "fail if a function contradicts its //purity: directive")
	f.BoolVar(&opts.stats, "stats", false, "print statistics about the analyzed functions")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	f.StringVar(&opts.neo4jURI, "neo4j-uri", "", "export the results to the Neo4j instance at this URI")
	f.StringVar(&opts.neo4jUser, "neo4j-user", "neo4j", "Neo4j user name")
	f.StringVar(&opts.neo4jPass, "neo4j-pass", "", "Neo4j password")
	f.StringVar(&opts.neo4jDB, "neo4j-db", "", "Neo4j database (default database of the instance if empty)")
	f.AddGoFlagSet(tools.BuildTagsFlagSet("purity"))
	return cmd
}

func runPurity(ctx context.Context, opts *options, hasSource bool, args []string, stdout, stderr io.Writer) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	if opts.write && !opts.annotate {
		return usageErrorf("--write requires --annotate")
	}
	if opts.noColor || !formatutil.IsTerminal(stdout) {
		formatutil.SetColors(false)
	}

	cfg, err := tools.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.mode != "" {
		mode := config.CallgraphMode(opts.mode)
		if !mode.IsValid() {
			return usageErrorf("invalid --mode %q, expected one of %v", opts.mode, config.CallgraphModes)
		}
		cfg.CallgraphMode = mode
	}
	if opts.logLevel > 0 {
		cfg.LogLevel = opts.logLevel
	}
	logger := config.NewLogGroup(cfg)
	logger.SetAllOutput(stderr)

	a, err := analyze(ctx, opts, hasSource, args, cfg, logger)
	if err != nil {
		return err
	}

	if opts.annotate {
		if err := writeAnnotated(a, opts.write, stdout); err != nil {
			return err
		}
	} else if err := render.Write(stdout, format, a, opts.verbose || cfg.ReportDependencies); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if opts.stats {
		analysis.ComputeStatistics(a).Write(stdout)
	}

	if opts.neo4jURI != "" {
		if err := exportNeo4j(ctx, opts, a, logger); err != nil {
			return err
		}
	}

	if opts.check {
		violations := a.CheckDirectives()
		if err := render.WriteViolations(stdout, violations); err != nil {
			return err
		}
		if len(violations) > 0 {
			return fmt.Errorf("%d purity directive violations", len(violations))
		}
	}
	return nil
}

// analyze runs the analysis on the input selected by the flags
func analyze(ctx context.Context, opts *options, hasSource bool, args []string, cfg *config.Config,
	logger *config.LogGroup) (*analysis.Analysis, error) {
	if hasSource {
		if len(args) > 0 || len(opts.files) > 0 || opts.packages {
			return nil, usageErrorf("--string cannot be combined with other inputs")
		}
		if opts.write {
			return nil, usageErrorf("--write cannot be used with --string")
		}
		return analysis.Analyze(ctx, opts.source, cfg, logger)
	}
	if opts.packages {
		if len(args) == 0 {
			return nil, usageErrorf("expected package patterns")
		}
		if len(opts.files) > 0 {
			return nil, usageErrorf("--files cannot be combined with --packages")
		}
		return analysis.AnalyzePackages(ctx, args, cfg, logger)
	}
	files := append(append([]string(nil), opts.files...), args...)
	if len(files) == 0 {
		return nil, usageErrorf("expected a Go file, --files or --string")
	}
	return analysis.AnalyzeFiles(ctx, files, cfg, logger)
}

// writeAnnotated prints the annotated sources, or writes them to their files when write is set
func writeAnnotated(a *analysis.Analysis, write bool, stdout io.Writer) error {
	sources, err := a.Annotate()
	if err != nil {
		return fmt.Errorf("failed to annotate sources: %w", err)
	}
	filenames := make([]string, 0, len(sources))
	for name := range sources {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)
	for _, name := range filenames {
		if write {
			if err := os.WriteFile(name, sources[name], 0o644); err != nil {
				return fmt.Errorf("could not write annotated file: %w", err)
			}
			continue
		}
		if len(filenames) > 1 {
			fmt.Fprintf(stdout, "// ==> %s <==\n", name)
		}
		if _, err := stdout.Write(sources[name]); err != nil {
			return err
		}
	}
	return nil
}

func exportNeo4j(ctx context.Context, opts *options, a *analysis.Analysis, logger *config.LogGroup) error {
	exporter, err := export.NewNeo4jExporter(ctx, opts.neo4jURI, opts.neo4jUser, opts.neo4jPass, opts.neo4jDB, logger)
	if err != nil {
		return err
	}
	defer exporter.Close(ctx)
	if err := exporter.Export(ctx, a); err != nil {
		return fmt.Errorf("neo4j export failed: %w", err)
	}
	return nil
}

// executeContext runs cmd with a context cancelled on interrupt
func executeContext(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cmd.ExecuteContext(ctx)
}
