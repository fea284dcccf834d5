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

package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/internal/graphutil"
	"golang.org/x/tools/go/ssa"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// nodeColor is the GraphViz color of the routines of each purity
var nodeColor = map[purity.Purity]string{
	purity.Impure:               "red",
	purity.Unknown:              "orange",
	purity.ParametricallyImpure: "blue",
	purity.Pure:                 "darkgreen",
}

// BuildGraph returns the graph of the direct calls of the declared routines. The vertices are the declared
// routines, sorted by label, followed by the unresolved routines they call. Unresolved routines are drawn as boxes.
func BuildGraph(a *analysis.Analysis) *graphutil.Graph {
	res := a.Result
	declared := sortedByLabel(res.Declared)
	index := map[purity.RoutineID]int{}
	var vertices []purity.RoutineID
	add := func(id purity.RoutineID) {
		if _, ok := index[id]; !ok {
			index[id] = len(vertices)
			vertices = append(vertices, id)
		}
	}
	for _, id := range declared {
		add(id)
	}
	var callees []purity.RoutineID
	for _, id := range declared {
		callees = append(callees, res.Calls[id]...)
	}
	for _, id := range sortedByLabel(callees) {
		add(id)
	}

	g := graphutil.New(labelsOf(vertices))
	for i, id := range vertices {
		attrs := []encoding.Attribute{{Key: "color", Value: nodeColor[res.Purities[id]]}}
		if !id.HasKnownDeclaration() {
			attrs = append(attrs, encoding.Attribute{Key: "shape", Value: "box"})
		}
		g.SetAttributes(i, attrs...)
	}
	for _, id := range declared {
		for _, callee := range res.Calls[id] {
			g.AddEdge(index[id], index[callee])
		}
	}
	return g
}

// WriteDot writes the call graph of the declared routines in GraphViz format
func WriteDot(w io.Writer, a *analysis.Analysis) error {
	b, err := dot.Marshal(BuildGraph(a), "purity", "", "  ")
	if err != nil {
		return fmt.Errorf("error while encoding graph: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	return nil
}

// WriteSSA writes the SSA form of the declared functions and of their anonymous functions, in the order of the
// routines of the program.
func WriteSSA(w io.Writer, a *analysis.Analysis) error {
	if a.Resolver == nil {
		return nil
	}
	var b bytes.Buffer
	for _, fn := range a.Resolver.Functions() {
		fmt.Fprintf(&b, "// %s: %s\n", fn.String(), a.Result.Purities[a.Resolver.RoutineFor(fn)])
		ssa.WriteFunction(&b, fn)
		writeAnons(&b, fn)
		b.WriteString("\n")
	}
	_, err := w.Write(b.Bytes())
	return err
}

func writeAnons(b *bytes.Buffer, f *ssa.Function) {
	for _, anon := range f.AnonFuncs {
		ssa.WriteFunction(b, anon)
		writeAnons(b, anon)
	}
}
