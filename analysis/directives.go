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
	"go/ast"
	"go/token"

	"github.com/awslabs/go-purity/analysis/lang"
	"github.com/awslabs/go-purity/analysis/purity"
)

// DirectivePrefix is the prefix of the directive comments of the analysis.
const DirectivePrefix = "purity"

// Directives represents a map of directive position to directive.
type Directives map[DirectivePos]Directive

// Directive represents an expectation on the purity of a function, stated in its documentation.
// It is a comment in the form: `//purity:x`, where x is the name of a purity in lower case, e.g. `//purity:pure`.
type Directive struct {
	Expected purity.Purity
	Comment  string
	Decl     *ast.FuncDecl
}

// DirectivePos represents the position of a directive within a program: the position of the name of the function
// declaration it documents.
type DirectivePos struct {
	Filename string
	Line     int
}

// NewDirectivePos creates a DirectivePos from a token.Position.
func NewDirectivePos(pos token.Position) DirectivePos {
	return DirectivePos{
		Filename: pos.Filename,
		Line:     pos.Line,
	}
}

// directiveKinds maps the argument of a directive to the expected purity
var directiveKinds = map[string]purity.Purity{
	"pure":    purity.Pure,
	"impure":  purity.Impure,
	"unknown": purity.Unknown,
}

// NewDirective returns the directive documenting decl and true if decl has a valid directive comment.
func NewDirective(decl *ast.FuncDecl) (Directive, bool) {
	arg, found := lang.DocDirective(decl, DirectivePrefix)
	if !found {
		return Directive{}, false
	}
	p, ok := directiveKinds[arg]
	if !ok {
		return Directive{}, false
	}
	return Directive{Expected: p, Comment: "//" + DirectivePrefix + ":" + arg, Decl: decl}, true
}

// findDirectives returns all the directives in files.
func findDirectives(files []*ast.File, fset *token.FileSet) Directives {
	res := make(Directives)
	lang.MapFuncDecls(files, func(decl *ast.FuncDecl) {
		pos := fset.Position(decl.Name.Pos())
		if !pos.IsValid() {
			return
		}

		d, ok := NewDirective(decl)
		if !ok {
			return
		}

		res[NewDirectivePos(pos)] = d
	})

	return res
}

// Violation is a routine whose purity is not the one expected by its directive.
type Violation struct {
	Routine  purity.RoutineID
	Position token.Position
	Expected purity.Purity
	Actual   purity.Purity
}
