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
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"strconv"

	"github.com/awslabs/go-purity/analysis/lang"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// PkgLoadMode is the default loading mode in the analyses. We load all possible information.
const PkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedExportFile |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedModule

// SourcePackage is the path of the package of source files loaded with LoadSources.
const SourcePackage = "main"

// LoadedProgram represents a loaded program.
type LoadedProgram struct {
	// Program is the SSA version of the program. It is nil when no source could be loaded.
	Program *ssa.Program
	// Packages are the SSA packages of the analyzed code. Dependencies are in Program but not in Packages.
	Packages []*ssa.Package
	// Files is the syntax of the analyzed code
	Files []*ast.File
	// Directives is a map from the directive's position in the program to the relevant directive comment.
	Directives Directives
	// Skipped are the names of the sources that could not be parsed as Go code
	Skipped []string
}

// Fset returns the file set of the program, or nil if the program is empty.
func (lp LoadedProgram) Fset() *token.FileSet {
	if lp.Program == nil {
		return nil
	}
	return lp.Program.Fset
}

// LoadProgram loads a program on platform "platform" using the buildmode provided and the args.
// To understand how to specify the args, look at the documentation of packages.Load.
func LoadProgram(ctx context.Context,
	config *packages.Config,
	platform string,
	buildmode ssa.BuilderMode,
	args []string) (LoadedProgram, error) {

	fset := token.NewFileSet()
	if config == nil {
		config = &packages.Config{
			Mode:  PkgLoadMode,
			Tests: false,
		}
	}
	if config.Fset == nil {
		config.Fset = fset
	}
	config.Context = ctx

	if platform != "" {
		config.Env = append(os.Environ(), fmt.Sprintf("GOOS=%s", platform))
	}

	// load, parse and type check the given packages
	initialPackages, err := packages.Load(config, args...)
	if err != nil {
		return LoadedProgram{}, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(initialPackages) == 0 {
		return LoadedProgram{}, fmt.Errorf("no packages")
	}

	if packages.PrintErrors(initialPackages) > 0 {
		return LoadedProgram{}, fmt.Errorf("errors found, exiting")
	}

	// Construct SSA for all the packages we have loaded
	program, ssaPackages := ssautil.AllPackages(initialPackages, buildmode)

	var files []*ast.File
	for i, p := range ssaPackages {
		if p == nil {
			return LoadedProgram{}, fmt.Errorf("cannot build SSA for package %s", initialPackages[i])
		}
		files = append(files, initialPackages[i].Syntax...)
	}

	// Build SSA for entire program
	program.Build()

	return LoadedProgram{
		Program:    program,
		Packages:   ssaPackages,
		Files:      files,
		Directives: findDirectives(files, program.Fset),
	}, nil
}

// Source is a Go source file, given by its name and contents.
type Source struct {
	Filename string
	Text     string
}

// ImportLoadMode is the loading mode of the packages imported by sources loaded with LoadSources. Only their types
// are needed.
const ImportLoadMode = packages.NeedName |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedTypesSizes

// LoadSources parses, type-checks and builds the sources as a single package. The packages they import are loaded
// with go/packages from the directory dir (the current directory if dir is empty), so the sources can import any
// package of the enclosing module and of its dependencies. Imported packages have no function bodies.
//
// Sources without a package clause are read as files of package main. Sources that are not Go code are skipped and
// reported in LoadedProgram.Skipped; if no source is Go code, the loaded program is empty.
func LoadSources(ctx context.Context, dir string, sources []Source, buildmode ssa.BuilderMode) (LoadedProgram, error) {
	fset := token.NewFileSet()
	var files []*ast.File
	var skipped []string
	for _, src := range sources {
		f, err := parseSource(fset, src)
		if err != nil {
			skipped = append(skipped, src.Filename)
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return LoadedProgram{Skipped: skipped}, nil
	}

	name := files[0].Name.Name
	for _, f := range files[1:] {
		if f.Name.Name != name {
			return LoadedProgram{}, fmt.Errorf("sources belong to different packages: %s and %s",
				name, f.Name.Name)
		}
	}

	imported, err := loadImports(ctx, dir, files)
	if err != nil {
		return LoadedProgram{}, err
	}

	path := SourcePackage
	if name != "main" {
		path = name
	}
	tc := &types.Config{Importer: imported}
	pkg, _, err := ssautil.BuildPackage(tc, fset, types.NewPackage(path, name), files, buildmode)
	if err != nil {
		return LoadedProgram{}, fmt.Errorf("type checking failed: %w", err)
	}

	return LoadedProgram{
		Program:    pkg.Prog,
		Packages:   []*ssa.Package{pkg},
		Files:      files,
		Directives: findDirectives(files, fset),
		Skipped:    skipped,
	}, nil
}

// loadImports loads the packages imported by the files with go/packages.
func loadImports(ctx context.Context, dir string, files []*ast.File) (packageImporter, error) {
	imported := packageImporter{}
	var paths []string
	for _, f := range files {
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil || path == "unsafe" || path == "C" {
				continue
			}
			if _, ok := imported[path]; !ok {
				imported[path] = nil
				paths = append(paths, path)
			}
		}
	}
	if len(paths) == 0 {
		return imported, nil
	}
	config := &packages.Config{
		Mode:    ImportLoadMode,
		Context: ctx,
		Dir:     dir,
	}
	pkgs, err := packages.Load(config, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	for _, p := range pkgs {
		imported[p.PkgPath] = p
	}
	return imported, nil
}

// packageImporter imports the packages loaded by loadImports.
type packageImporter map[string]*packages.Package

// Import implements types.Importer.
func (m packageImporter) Import(path string) (*types.Package, error) {
	if path == "unsafe" {
		return types.Unsafe, nil
	}
	p := m[path]
	if p == nil {
		return nil, fmt.Errorf("can't find import %q", path)
	}
	if len(p.Errors) > 0 {
		return nil, p.Errors[0]
	}
	if p.Types == nil {
		return nil, fmt.Errorf("no type information for %q", path)
	}
	return p.Types, nil
}

// parseSource parses a source, reading it as a file of package main when it has no package clause.
func parseSource(fset *token.FileSet, src Source) (*ast.File, error) {
	f, err := parser.ParseFile(fset, src.Filename, src.Text, parser.ParseComments)
	if err == nil {
		return f, nil
	}
	header, _ := parser.ParseFile(token.NewFileSet(), src.Filename, src.Text, parser.PackageClauseOnly)
	if !lang.HasPackageClause(header) {
		if f, err2 := parser.ParseFile(fset, src.Filename, "package main\n"+src.Text, parser.ParseComments); err2 == nil {
			return f, nil
		}
	}
	return nil, err
}

// ReadSources reads the files as sources
func ReadSources(filenames []string) ([]Source, error) {
	sources := make([]Source, 0, len(filenames))
	for _, filename := range filenames {
		b, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("could not read source file: %w", err)
		}
		sources = append(sources, Source{Filename: filename, Text: string(b)})
	}
	return sources, nil
}
