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

// Package puritycheck defines an analyzer that checks the purity directives of the functions of a package.
//
// A directive is a comment "//purity:pure", "//purity:impure" or "//purity:unknown" in the documentation of a
// function declaration. The analyzer infers the purity of the functions of the package, treating every function of
// another package as external, and reports the functions whose purity is not the one stated by their directive.
package puritycheck

import (
	"context"
	"go/ast"
	"go/token"
	"reflect"

	purityanalysis "github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/config"
	"github.com/awslabs/go-purity/analysis/lang"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/analysis/resolver"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"
)

// configPath is the value of the -config flag of the analyzer
var configPath string

// Analyzer is the analyzer checking purity directives. Its result is the *purity.Result of the package.
var Analyzer = &analysis.Analyzer{
	Name:       "puritycheck",
	Doc:        "reports functions whose inferred purity differs from their //purity: directive",
	Run:        run,
	Requires:   []*analysis.Analyzer{buildssa.Analyzer},
	ResultType: reflect.TypeOf((*purity.Result)(nil)),
}

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "config file of the purity analysis")
}

func run(pass *analysis.Pass) (interface{}, error) {
	cfg := config.NewDefault()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}
	logger := config.NewDiscardLogGroup()

	directives := map[token.Pos]purityanalysis.Directive{}
	lang.MapFuncDecls(pass.Files, func(decl *ast.FuncDecl) {
		if d, ok := purityanalysis.NewDirective(decl); ok {
			directives[decl.Name.Pos()] = d
		}
	})

	input := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	r := resolver.New(input.Pkg.Prog, []*ssa.Package{input.Pkg}, nil, cfg, logger)
	result, err := purity.Run(context.Background(), r.Program(), purity.NewClassifier(cfg), logger)
	if err != nil {
		return nil, err
	}

	for _, id := range result.Declared {
		fn := r.Function(id)
		d, ok := directives[fn.Pos()]
		if !ok {
			continue
		}
		if actual := result.Purities[id]; actual != d.Expected {
			pass.Reportf(fn.Pos(), "%s is %s, expected %s", id.Label(), actual, d.Expected)
		}
	}
	return result, nil
}
