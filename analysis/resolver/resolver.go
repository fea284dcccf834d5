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

// Package resolver builds the input of the purity analysis from a program in SSA form.
//
// The routines of the analysis are the functions with a body of the analyzed packages. Anonymous functions are
// part of the function that declares them: their calls and their references to package-level variables are the
// ones of the enclosing declared function. Instances of generic functions are identified with their origin.
//
// Calls to functions without body, to builtins that print, and dynamic calls that cannot be resolved become
// unresolved call targets. When a call graph is provided, dynamic calls are resolved to the callees of the call
// graph.
package resolver

import (
	"go/token"
	"go/types"
	"sort"

	"github.com/awslabs/go-purity/analysis/config"
	"github.com/awslabs/go-purity/analysis/lang"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/internal/funcutil"
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/ssa"
)

// Resolver maps the functions of a program to routine identifiers.
type Resolver struct {
	program *ssa.Program
	config  *config.Config
	logger  *config.LogGroup

	// functions are the declared functions, in a deterministic order
	functions []*ssa.Function

	// ids maps declared functions to their routine identifier
	ids map[*ssa.Function]purity.RoutineID

	// functionOf is the reverse of ids
	functionOf map[purity.RoutineID]*ssa.Function

	// callees maps the dynamic call sites of the declared functions to their callees in the call graph
	callees map[ssa.CallInstruction][]*ssa.Function
}

// New returns a resolver for the functions of the packages pkgs of program. The call graph cg is used to resolve
// dynamic calls, and may be nil.
func New(program *ssa.Program, pkgs []*ssa.Package, cg *callgraph.Graph, cfg *config.Config,
	logger *config.LogGroup) *Resolver {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if logger == nil {
		logger = config.NewDiscardLogGroup()
	}
	r := &Resolver{
		program:    program,
		config:     cfg,
		logger:     logger,
		ids:        map[*ssa.Function]purity.RoutineID{},
		functionOf: map[purity.RoutineID]*ssa.Function{},
		callees:    map[ssa.CallInstruction][]*ssa.Function{},
	}
	r.functions = declaredFunctions(pkgs, cfg)

	var relativeTo *ssa.Package
	if len(pkgs) == 1 {
		relativeTo = pkgs[0]
	}
	for _, fn := range r.functions {
		label := fn.String()
		if relativeTo != nil {
			label = fn.RelString(relativeTo.Pkg)
		}
		id := purity.NewResolved(fn.String(), label, qualifierOf(fn))
		r.ids[fn] = id
		r.functionOf[id] = fn
	}
	if cg != nil {
		r.indexCallgraph(cg)
	}
	return r
}

// declaredFunctions returns the functions with a body of pkgs that are not anonymous, synthetic or instances of
// generic functions, sorted by position.
func declaredFunctions(pkgs []*ssa.Package, cfg *config.Config) []*ssa.Function {
	inPkgs := map[*ssa.Package]bool{}
	for _, pkg := range pkgs {
		if pkg != nil && cfg.MatchPkgFilter(pkg.Pkg.Path()) {
			inPkgs[pkg] = true
		}
	}
	seen := map[*ssa.Function]bool{}
	var functions []*ssa.Function
	add := func(fn *ssa.Function) {
		if fn == nil || seen[fn] || !inPkgs[fn.Pkg] || !isDeclared(fn) {
			return
		}
		seen[fn] = true
		functions = append(functions, fn)
	}
	for pkg := range inPkgs {
		for _, member := range pkg.Members {
			switch m := member.(type) {
			case *ssa.Function:
				add(m)
			case *ssa.Type:
				named, ok := m.Type().(*types.Named)
				if !ok {
					continue
				}
				for i := 0; i < named.NumMethods(); i++ {
					add(pkg.Prog.FuncValue(named.Method(i)))
				}
			}
		}
	}
	sort.Slice(functions, func(i, j int) bool {
		if functions[i].Pos() != functions[j].Pos() {
			return functions[i].Pos() < functions[j].Pos()
		}
		return functions[i].String() < functions[j].String()
	})
	return functions
}

// isDeclared returns true if the function is declared in the source with a body.
func isDeclared(fn *ssa.Function) bool {
	return fn.Blocks != nil && fn.Synthetic == "" && fn.Parent() == nil && fn.Origin() == nil &&
		fn.Pos() != token.NoPos
}

// indexCallgraph records the callees of the dynamic call sites of the declared functions and of their anonymous
// functions.
func (r *Resolver) indexCallgraph(cg *callgraph.Graph) {
	for _, fn := range r.functions {
		for _, f := range lang.WithAnonFuncs(fn) {
			node := cg.Nodes[f]
			if node == nil {
				continue
			}
			for _, e := range node.Out {
				if e.Site == nil || e.Site.Common().StaticCallee() != nil || e.Callee.Func == nil {
					continue
				}
				r.callees[e.Site] = append(r.callees[e.Site], e.Callee.Func)
			}
		}
	}
	for site, callees := range r.callees {
		sort.Slice(callees, func(i, j int) bool { return callees[i].String() < callees[j].String() })
		r.callees[site] = callees
	}
}

// Program returns the input of the purity analysis. The call sites of the functions are collected with the number
// of workers of the configuration.
func (r *Resolver) Program() *purity.Declarations {
	summaries := funcutil.MapParallel(r.functions, r.summarize, r.config.Workers())
	decls := purity.NewDeclarations()
	for i, fn := range r.functions {
		decls.Declare(r.ids[fn], summaries[i].readsSharedState, summaries[i].calls...)
	}
	r.logger.Debugf("resolved %d routines", decls.Len())
	return decls
}

// RoutineFor returns the identifier of a function. Anonymous functions and instances are identified with the
// function they belong to; functions that are not declared in the analyzed packages are unresolved.
func (r *Resolver) RoutineFor(fn *ssa.Function) purity.RoutineID {
	root := rootOf(fn)
	if id, ok := r.ids[root]; ok {
		return id
	}
	return unresolvedFunction(root)
}

// Function returns the declared function of a routine, or nil if the routine is not declared.
func (r *Resolver) Function(id purity.RoutineID) *ssa.Function {
	return r.functionOf[id]
}

// Functions returns the declared functions, in the order of the routines of the program.
func (r *Resolver) Functions() []*ssa.Function {
	return r.functions
}

// Position returns the position of the declaration of a routine, or an invalid position if the routine is not
// declared.
func (r *Resolver) Position(id purity.RoutineID) token.Position {
	fn := r.functionOf[id]
	if fn == nil {
		return token.Position{}
	}
	return r.program.Fset.Position(fn.Pos())
}

// rootOf returns the declared function fn belongs to: the origin of an instance, and the outermost enclosing
// function of an anonymous function.
func rootOf(fn *ssa.Function) *ssa.Function {
	for {
		switch {
		case fn.Origin() != nil:
			fn = fn.Origin()
		case fn.Parent() != nil:
			fn = fn.Parent()
		default:
			return fn
		}
	}
}
