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
	"fmt"
	"go/ast"
	"go/token"

	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/analysis/refactor"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Annotate returns the analyzed files, indexed by file name, with a comment stating the purity of every declared
// function added to its documentation.
func (a *Analysis) Annotate() (map[string][]byte, error) {
	out := map[string][]byte{}
	if a.Resolver == nil {
		return out, nil
	}
	fset := a.Loaded.Fset()
	positions := map[token.Pos]purity.Purity{}
	for _, fn := range a.Resolver.Functions() {
		positions[fn.Pos()] = a.Result.Purities[a.Resolver.RoutineFor(fn)]
	}

	dec := decorator.NewDecorator(fset)
	for _, f := range a.Loaded.Files {
		filename := fset.Position(f.Pos()).Filename
		dstFile, err := dec.DecorateFile(f)
		if err != nil {
			return nil, fmt.Errorf("could not decorate %s: %w", filename, err)
		}
		refactor.AnnotatePurity([]*dst.File{dstFile}, func(fd *dst.FuncDecl) (purity.Purity, bool) {
			astDecl, ok := dec.Ast.Nodes[fd].(*ast.FuncDecl)
			if !ok {
				return purity.Impure, false
			}
			p, ok := positions[astDecl.Name.Pos()]
			return p, ok
		})
		b, err := refactor.Format(dstFile)
		if err != nil {
			return nil, err
		}
		out[filename] = b
	}
	return out, nil
}
