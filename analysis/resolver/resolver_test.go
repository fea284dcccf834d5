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

package resolver_test

import (
	"context"
	"testing"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/config"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/analysis/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/ssa"
)

const src = `package p

import (
	"fmt"
	"io"
	"time"
)

var verbose bool

type logger struct{ w io.Writer }

func (l *logger) log(msg string) {
	if verbose {
		fmt.Fprintln(l.w, msg)
	}
}

type clock interface{ now() int64 }

type wall struct{}

func (wall) now() int64 { return time.Now().Unix() }

func elapsed(c clock, start int64) int64 {
	return c.now() - start
}

func outer(xs []int) int {
	n := 0
	inc := func() { n++; helper() }
	for range xs {
		inc()
	}
	println(len(xs))
	return n
}

func helper() {}

func start() int64 { return elapsed(wall{}, 0) }

func bound(l *logger) func(string) {
	return l.log
}
`

func newResolver(t *testing.T, mode config.CallgraphMode) *resolver.Resolver {
	t.Helper()
	lp, err := analysis.LoadSources(context.Background(), "", []analysis.Source{{Filename: "p.go", Text: src}},
		ssa.BuilderMode(0))
	require.NoError(t, err)
	cfg := config.NewDefault()
	cfg.CallgraphMode = mode
	cfg.NumWorkers = 3
	cg, err := analysis.ComputeCallgraph(mode, lp.Program)
	require.NoError(t, err)
	return resolver.New(lp.Program, lp.Packages, cg, cfg, config.NewDiscardLogGroup())
}

func callLabels(p purity.Program, label string) []string {
	var labels []string
	for _, id := range p.Routines() {
		if id.Label() == label {
			for _, c := range p.CallSites(id) {
				labels = append(labels, c.Label())
			}
		}
	}
	return labels
}

func TestRoutines(t *testing.T) {
	r := newResolver(t, config.StaticMode)
	p := r.Program()
	var labels []string
	for _, id := range p.Routines() {
		labels = append(labels, id.Label())
		assert.True(t, id.HasKnownDeclaration())
		assert.NotNil(t, r.Function(id))
		pos := r.Position(id)
		assert.True(t, pos.IsValid())
		assert.Equal(t, "p.go", pos.Filename)
	}
	assert.Equal(t, []string{"(*logger).log", "(wall).now", "elapsed", "outer", "helper", "start", "bound"}, labels)
}

func TestCallSitesStatic(t *testing.T) {
	p := newResolver(t, config.StaticMode).Program()
	assert.Equal(t, []string{"fmt.Fprintln"}, callLabels(p, "(*logger).log"))
	assert.Equal(t, []string{"time.Now", "(time.Time).Unix"}, callLabels(p, "(wall).now"))
	assert.Equal(t, []string{"(p.clock).now"}, callLabels(p, "elapsed"))
	assert.ElementsMatch(t, []string{"helper", "println"}, callLabels(p, "outer"),
		"calls of closures are part of the enclosing function, len is not a call")
	assert.Empty(t, callLabels(p, "bound"))
	assert.Equal(t, []string{"elapsed"}, callLabels(p, "start"))
}

func TestCallSitesClassHierarchy(t *testing.T) {
	p := newResolver(t, config.ClassHierarchyMode).Program()
	calls := callLabels(p, "elapsed")
	require.NotEmpty(t, calls)
	for _, c := range calls {
		assert.Equal(t, "(wall).now", c, "wrappers of (*wall).now are replaced by their callee")
	}
}

func TestCallSitesVariableType(t *testing.T) {
	p := newResolver(t, config.VariableTypeMode).Program()
	assert.Equal(t, []string{"(wall).now"}, callLabels(p, "elapsed"), "only wall values flow to elapsed")
	assert.Equal(t, []string{"elapsed"}, callLabels(p, "start"))
}

func TestReadsSharedState(t *testing.T) {
	r := newResolver(t, config.StaticMode)
	p := r.Program()
	for _, id := range p.Routines() {
		assert.Equal(t, id.Label() == "(*logger).log", p.ReadsSharedState(id), id.Label())
	}
}

func TestRoutineForAnonymousFunction(t *testing.T) {
	r := newResolver(t, config.StaticMode)
	for _, fn := range r.Functions() {
		for _, anon := range fn.AnonFuncs {
			assert.Equal(t, r.RoutineFor(fn), r.RoutineFor(anon))
		}
	}
}

func TestQualifiers(t *testing.T) {
	r := newResolver(t, config.StaticMode)
	p := r.Program()
	for _, id := range p.Routines() {
		if id.Label() == "(*logger).log" {
			assert.Equal(t, purity.Qualifier{Package: "p", Receiver: "*logger", Name: "log"}, id.Qualifier())
			assert.Equal(t, "(*p.logger).log", id.Key())
		}
	}
	for _, c := range callLabels(p, "(wall).now") {
		if c == "(time.Time).Unix" {
			return
		}
	}
	t.Errorf("expected a call to (time.Time).Unix")
}
