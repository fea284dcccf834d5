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

package lang

import (
	"go/ast"
	"strings"
)

// MapFuncDecls applies fmap to each function declaration in files.
func MapFuncDecls(files []*ast.File, fmap func(*ast.FuncDecl)) {
	for _, f := range files {
		for _, decl := range f.Decls {
			if fd, ok := decl.(*ast.FuncDecl); ok {
				fmap(fd)
			}
		}
	}
}

// DocDirective returns the argument of the first directive comment "//<prefix>:<arg>" in the documentation of
// the declaration, and true if there is one. Directives have no space after the slashes.
func DocDirective(decl *ast.FuncDecl, prefix string) (string, bool) {
	if decl.Doc == nil {
		return "", false
	}
	for _, c := range decl.Doc.List {
		if arg, ok := strings.CutPrefix(c.Text, "//"+prefix+":"); ok {
			return strings.TrimSpace(arg), true
		}
	}
	return "", false
}

// HasPackageClause returns true if the file contains a package clause.
func HasPackageClause(f *ast.File) bool {
	return f != nil && f.Name != nil && f.Name.Name != "" && f.Name.Name != "_"
}
