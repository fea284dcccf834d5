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

// Package refactor rewrites Go source files with the results of the analyses, keeping their comments and
// formatting.
package refactor

import (
	"bytes"
	"fmt"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/dstutil"
)

type transform func(*dst.FuncDecl, *dstutil.Cursor) bool

// WithFuncDecls applies the transform post to every function declaration of the files, as a post operation in
// Apply. Nodes nested in function bodies are not visited.
func WithFuncDecls(files []*dst.File, post transform) {
	for _, dstFile := range files {
		dstutil.Apply(dstFile,
			// pre function applied in pre-order traversal: do not descend into bodies
			func(c *dstutil.Cursor) bool {
				switch c.Node().(type) {
				case *dst.File, *dst.FuncDecl:
					return true
				default:
					return false
				}
			},
			// post function applied in post-order
			func(c *dstutil.Cursor) bool {
				if funcDecl, ok := c.Node().(*dst.FuncDecl); ok {
					return post(funcDecl, c)
				}
				return true
			})
	}
}

// Format prints the file as Go source
func Format(f *dst.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := decorator.Fprint(&buf, f); err != nil {
		return nil, fmt.Errorf("could not print file: %w", err)
	}
	return buf.Bytes(), nil
}
