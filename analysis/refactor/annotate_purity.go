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

package refactor

import (
	"strings"

	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/dave/dst"
	"github.com/dave/dst/dstutil"
)

// AnnotationPrefix starts the comments added by AnnotatePurity
const AnnotationPrefix = "// purity: "

// AnnotatePurity adds a comment "// purity: <purity>" at the end of the documentation of every function declaration
// for which purityOf returns a purity. Annotations added by a previous run are replaced.
func AnnotatePurity(files []*dst.File, purityOf func(*dst.FuncDecl) (purity.Purity, bool)) {
	WithFuncDecls(files, func(funcDecl *dst.FuncDecl, _ *dstutil.Cursor) bool {
		p, ok := purityOf(funcDecl)
		if !ok {
			return true
		}
		decs := &funcDecl.Decs.Start
		var kept []string
		for _, c := range decs.All() {
			if !strings.HasPrefix(c, AnnotationPrefix) {
				kept = append(kept, c)
			}
		}
		decs.Replace(append(kept, AnnotationPrefix+p.String())...)
		if funcDecl.Decs.Before == dst.None {
			funcDecl.Decs.Before = dst.NewLine
		}
		return true
	})
}
