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

package analysis_test

import (
	"context"
	"embed"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/config"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/internal/analysistest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata
var testfsys embed.FS

func TestDirectives(t *testing.T) {
	for _, dir := range []string{"basic", "recursion", "closures", "methods", "callgraph"} {
		t.Run(dir, func(t *testing.T) {
			a := analysistest.LoadTest(t, testfsys, filepath.Join("testdata", "src", dir))
			analysistest.CheckDirectives(t, a)
		})
	}
}

func analyze(t *testing.T, text string) map[string]purity.Purity {
	t.Helper()
	a, err := analysis.Analyze(context.Background(), text, nil, config.NewDiscardLogGroup())
	require.NoError(t, err)
	return a.PuritiesByLabel()
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	inputs := map[string]string{
		"empty text":    "",
		"blank text":    "  \n\t\n",
		"non-code text": "The quick brown fox jumps over the lazy dog.",
		"types only":    "package shapes\n\ntype Point struct{ X, Y int }\n\ntype Shape interface{ Area() int }\n",
		"no package":    "type T struct{}\n",
	}
	for name, text := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, analyze(t, text))
		})
	}
}

func TestAnalyzePureLeaf(t *testing.T) {
	purities := analyze(t, "package p\n\nfunc f() int {\n\tx := 1\n\treturn x\n}\n")
	assert.Equal(t, map[string]purity.Purity{"f": purity.Pure}, purities)
}

func TestAnalyzeGlobalRead(t *testing.T) {
	purities := analyze(t, "package p\n\nvar shared = 3\n\nfunc f() int {\n\treturn shared\n}\n")
	assert.Equal(t, map[string]purity.Purity{"f": purity.Impure}, purities)
}

func TestAnalyzeTransitiveBlacklist(t *testing.T) {
	src := `package p

import "math/rand"

func foo() int { return bar() * 2 }

func bar() int { return rand.Intn(10) }
`
	purities := analyze(t, src)
	assert.Equal(t, map[string]purity.Purity{"foo": purity.Impure, "bar": purity.Impure}, purities)
}

func TestAnalyzeUnresolvedCallee(t *testing.T) {
	src := `package p

import "sort"

func f(xs []int) { sort.Ints(xs) }
`
	assert.Equal(t, map[string]purity.Purity{"f": purity.Unknown}, analyze(t, src))
}

func TestAnalyzeWithoutPackageClause(t *testing.T) {
	purities := analyze(t, "func f() int { return g() }\nfunc g() int { return 1 }\n")
	assert.Equal(t, map[string]purity.Purity{"f": purity.Pure, "g": purity.Pure}, purities)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	sources, err := analysistest.ReadSources(testfsys, filepath.Join("testdata", "src", "basic"))
	require.NoError(t, err)
	first := analyze(t, sources[0].Text)
	second := analyze(t, sources[0].Text)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestAnalyzeTypeError(t *testing.T) {
	_, err := analysis.Analyze(context.Background(), "package p\n\nfunc f() int { return undefined() }\n", nil,
		config.NewDiscardLogGroup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type checking failed")
}

func TestAnalyzeModuleImport(t *testing.T) {
	src := `package p

import "github.com/awslabs/go-purity/analysis/purity"

func worst() purity.Purity { return purity.Meet(purity.Pure, purity.Impure) }

func one() int { return 1 }
`
	assert.Equal(t, map[string]purity.Purity{"worst": purity.Unknown, "one": purity.Pure}, analyze(t, src))
}

func TestAnalyzeFilesModuleImport(t *testing.T) {
	a, err := analysis.AnalyzeFiles(context.Background(),
		[]string{filepath.Join("testdata", "src", "modimport", "main.go")}, nil, config.NewDiscardLogGroup())
	require.NoError(t, err)
	analysistest.CheckDirectives(t, a)
	assert.Len(t, a.Result.Declared, 3)
}

func TestAnalyzeUnavailableImport(t *testing.T) {
	_, err := analysis.Analyze(context.Background(),
		"package p\n\nimport \"example.com/does/not/exist\"\n\nfunc f() { exist.F() }\n", nil,
		config.NewDiscardLogGroup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type checking failed")
}

func TestAnalyzePackages(t *testing.T) {
	for _, dir := range []string{"basic", "recursion", "modimport"} {
		t.Run(dir, func(t *testing.T) {
			a, err := analysis.AnalyzePackages(context.Background(), []string{"./testdata/src/" + dir}, nil,
				config.NewDiscardLogGroup())
			require.NoError(t, err)
			require.Len(t, a.Loaded.Packages, 1)
			assert.NotEmpty(t, a.Result.Declared)
			analysistest.CheckDirectives(t, a)
		})
	}
}

func TestAnalyzePackagesVariableType(t *testing.T) {
	cfg := config.NewDefault()
	cfg.CallgraphMode = config.VariableTypeMode
	a, err := analysis.AnalyzePackages(context.Background(), []string{"./testdata/src/callgraph"}, cfg,
		config.NewDiscardLogGroup())
	require.NoError(t, err)
	analysistest.CheckDirectives(t, a)
}

func TestAnalyzeFilesMissingFile(t *testing.T) {
	_, err := analysis.AnalyzeFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing.go")}, nil,
		config.NewDiscardLogGroup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read source file")
}

func TestAnalyzeSourcesDifferentPackages(t *testing.T) {
	_, err := analysis.AnalyzeSources(context.Background(), []analysis.Source{
		{Filename: "a.go", Text: "package a\n"},
		{Filename: "b.go", Text: "package b\n"},
	}, nil, config.NewDiscardLogGroup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different packages")
}

func TestAnalyzeSkipsNonCodeSources(t *testing.T) {
	a, err := analysis.AnalyzeSources(context.Background(), []analysis.Source{
		{Filename: "notes.txt", Text: "not go {"},
		{Filename: "f.go", Text: "package p\n\nfunc f() {}\n"},
	}, nil, config.NewDiscardLogGroup())
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, a.Loaded.Skipped)
	assert.Equal(t, map[string]purity.Purity{"f": purity.Pure}, a.PuritiesByLabel())
}

func TestCheckDirectivesReportsViolations(t *testing.T) {
	src := `package p

import "time"

//purity:pure
func now() int64 { return time.Now().Unix() }

//purity:impure
func one() int { return 1 }
`
	a, err := analysis.Analyze(context.Background(), src, nil, config.NewDiscardLogGroup())
	require.NoError(t, err)
	violations := a.CheckDirectives()
	require.Len(t, violations, 2)
	assert.Equal(t, "now", violations[0].Routine.Label())
	assert.Equal(t, purity.Pure, violations[0].Expected)
	assert.Equal(t, purity.Impure, violations[0].Actual)
	assert.Equal(t, "one", violations[1].Routine.Label())
	assert.Equal(t, 6, violations[0].Position.Line)
}

func TestAnnotate(t *testing.T) {
	src := `package p

import "time"

// now returns the time
func now() time.Time { return time.Now() }

func one() int { return 1 }
`
	a, err := analysis.Analyze(context.Background(), src, nil, config.NewDiscardLogGroup())
	require.NoError(t, err)
	files, err := a.Annotate()
	require.NoError(t, err)
	require.Contains(t, files, "input.go")
	out := string(files["input.go"])
	assert.True(t, strings.Contains(out, "// now returns the time\n// purity: Impure\nfunc now()"), out)
	assert.True(t, strings.Contains(out, "// purity: Pure\nfunc one()"), out)
}

func TestDeclaredOrderAndLabels(t *testing.T) {
	src := `package p

type T struct{ n int }

func (t *T) Inc() { t.n++ }

func (t T) Get() int { return t.n }

func New() *T { return &T{} }
`
	a, err := analysis.Analyze(context.Background(), src, nil, config.NewDiscardLogGroup())
	require.NoError(t, err)
	var labels []string
	for _, id := range a.Result.Declared {
		labels = append(labels, id.Label())
	}
	assert.Equal(t, []string{"(*T).Inc", "(T).Get", "New"}, labels)
	assert.Equal(t, "(*p.T).Inc", a.Result.Declared[0].Key())
}

func TestComputeStatistics(t *testing.T) {
	src := `package p

var g int

func f() int {
	h := func() int { return g }
	return h()
}

func k() {}
`
	a, err := analysis.Analyze(context.Background(), src, nil, config.NewDiscardLogGroup())
	require.NoError(t, err)
	s := analysis.ComputeStatistics(a)
	assert.Equal(t, 2, s.NumberOfRoutines)
	assert.Equal(t, 1, s.NumberOfClosures)
	assert.Equal(t, 1, s.NumberOfGlobalReaders)
	assert.Equal(t, 0, s.NumberOfExternals)
	assert.Equal(t, 1, s.ByPurity[purity.Impure])
	assert.Equal(t, 1, s.ByPurity[purity.Pure])

	var b strings.Builder
	s.Write(&b)
	assert.Contains(t, b.String(), "routines:       2 (1 closures")
	assert.Contains(t, b.String(), "Impure:         1")
}
