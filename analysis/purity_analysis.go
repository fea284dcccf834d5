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

package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/awslabs/go-purity/analysis/config"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/analysis/resolver"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
)

// Analysis is the result of the purity analysis of a loaded program.
type Analysis struct {
	// Result is the outcome of the fixed-point computation
	Result *purity.Result
	// Loaded is the program that was analyzed
	Loaded LoadedProgram
	// Resolver maps the functions of the program to routines. It is nil when the program is empty.
	Resolver *resolver.Resolver
	// Config is the configuration of the analysis
	Config *config.Config
}

// Analyze runs the purity analysis on the Go source text. A text that is not Go code, or that declares no
// function, yields an empty classification.
func Analyze(ctx context.Context, text string, cfg *config.Config, logger *config.LogGroup) (*Analysis, error) {
	return AnalyzeSources(ctx, []Source{{Filename: "input.go", Text: text}}, cfg, logger)
}

// AnalyzeFiles runs the purity analysis on the files, which must be the files of a single package. Their imports
// are resolved from the directory of the first file, in the module that contains it.
func AnalyzeFiles(ctx context.Context, filenames []string, cfg *config.Config,
	logger *config.LogGroup) (*Analysis, error) {
	sources, err := ReadSources(filenames)
	if err != nil {
		return nil, err
	}
	dir := ""
	if len(filenames) > 0 {
		dir = filepath.Dir(filenames[0])
	}
	return analyzeSources(ctx, dir, sources, cfg, logger)
}

// AnalyzeSources runs the purity analysis on the sources, which must be the files of a single package. Their
// imports are resolved from the current directory.
func AnalyzeSources(ctx context.Context, sources []Source, cfg *config.Config,
	logger *config.LogGroup) (*Analysis, error) {
	return analyzeSources(ctx, "", sources, cfg, logger)
}

func analyzeSources(ctx context.Context, dir string, sources []Source, cfg *config.Config,
	logger *config.LogGroup) (*Analysis, error) {
	cfg, logger = withDefaults(cfg, logger)
	lp, err := LoadSources(ctx, dir, sources, ssa.BuilderMode(0))
	if err != nil {
		return nil, err
	}
	for _, name := range lp.Skipped {
		logger.Debugf("%s is not Go code, skipped", name)
	}
	return AnalyzeProgram(ctx, lp, cfg, logger)
}

// AnalyzePackages loads the packages matching the patterns with go/packages and runs the purity analysis on them.
func AnalyzePackages(ctx context.Context, patterns []string, cfg *config.Config,
	logger *config.LogGroup) (*Analysis, error) {
	cfg, logger = withDefaults(cfg, logger)
	loadConfig := &packages.Config{
		Mode:  PkgLoadMode,
		Tests: cfg.IncludeTests,
	}
	logger.Infof("Loading packages %v ...", patterns)
	start := time.Now()
	lp, err := LoadProgram(ctx, loadConfig, "", ssa.BuilderMode(0), patterns)
	if err != nil {
		return nil, err
	}
	logger.Infof("Loaded %d packages (%.2f s)", len(lp.Packages), time.Since(start).Seconds())
	return AnalyzeProgram(ctx, lp, cfg, logger)
}

// AnalyzeProgram runs the purity analysis on the packages of a loaded program.
func AnalyzeProgram(ctx context.Context, lp LoadedProgram, cfg *config.Config,
	logger *config.LogGroup) (*Analysis, error) {
	cfg, logger = withDefaults(cfg, logger)
	a := &Analysis{Loaded: lp, Config: cfg}

	var program purity.Program = purity.NewDeclarations()
	if lp.Program != nil {
		cg, err := ComputeCallgraph(cfg.CallgraphMode, lp.Program)
		if err != nil {
			return nil, fmt.Errorf("failed to compute call graph: %w", err)
		}
		a.Resolver = resolver.New(lp.Program, lp.Packages, cg, cfg, logger)
		program = a.Resolver.Program()
	}

	start := time.Now()
	result, err := purity.Run(ctx, program, purity.NewClassifier(cfg), logger)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Purity analysis of %d routines done in %d passes (%.2f s)",
		len(result.Declared), result.Stats.Passes, time.Since(start).Seconds())
	a.Result = result
	return a, nil
}

func withDefaults(cfg *config.Config, logger *config.LogGroup) (*config.Config, *config.LogGroup) {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if logger == nil {
		logger = config.NewLogGroup(cfg)
	}
	return cfg, logger
}

// Purities returns the purity of the routines declared in the analyzed program.
func (a *Analysis) Purities() map[purity.RoutineID]purity.Purity {
	return a.Result.DeclaredPurities()
}

// PuritiesByLabel returns the purity of the declared routines indexed by their label.
func (a *Analysis) PuritiesByLabel() map[string]purity.Purity {
	m := map[string]purity.Purity{}
	for id, p := range a.Purities() {
		m[id.Label()] = p
	}
	return m
}

// CheckDirectives returns the routines whose purity differs from the one stated by a directive, ordered by position.
func (a *Analysis) CheckDirectives() []Violation {
	if a.Resolver == nil {
		return nil
	}
	var violations []Violation
	for _, id := range a.Result.Declared {
		pos := a.Resolver.Position(id)
		d, ok := a.Loaded.Directives[NewDirectivePos(pos)]
		if !ok {
			continue
		}
		if actual := a.Result.Purities[id]; actual != d.Expected {
			violations = append(violations, Violation{Routine: id, Position: pos, Expected: d.Expected, Actual: actual})
		}
	}
	slices.SortFunc(violations, func(a, b Violation) bool {
		if a.Position.Filename != b.Position.Filename {
			return a.Position.Filename < b.Position.Filename
		}
		return a.Position.Line < b.Position.Line
	})
	return violations
}
