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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/awslabs/go-purity/internal/formatutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `package p

import "time"

func add(x, y int) int { return x + y }

func stamp() int64 { return time.Now().Unix() }
`

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	formatutil.SetColors(false)
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunString(t *testing.T) {
	code, stdout, stderr := runCmd(t, "-s", source)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "add:\tPure\nstamp:\tImpure\n", stdout)
}

func TestRunEmptyString(t *testing.T) {
	code, stdout, _ := runCmd(t, "--string", "")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.go", source)
	code, stdout, stderr := runCmd(t, path)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "add:\tPure\nstamp:\tImpure\n", stdout)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.go", "package p\n\nvar n int\n\nfunc get() int { return n }\n")
	b := writeFile(t, dir, "b.go", "package p\n\nfunc twice() int { return 2 * get() }\n")
	code, stdout, stderr := runCmd(t, "--files", a+","+b)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "get:\tImpure\ntwice:\tImpure\n", stdout)
}

func TestRunNoInput(t *testing.T) {
	code, stdout, stderr := runCmd(t)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "expected a Go file, --files or --string")
	assert.Contains(t, stderr, "Usage:")
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := runCmd(t, filepath.Join(t.TempDir(), "missing.go"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error: could not read source file")
}

func TestRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--unknown-flag", "a.go"},
		{"--mode", "pointer", "-s", source},
		{"--format", "xml", "-s", source},
		{"--write", "-s", source},
		{"-s", source, "a.go"},
		{"--packages"},
	} {
		code, _, _ := runCmd(t, args...)
		assert.Equal(t, 2, code, "%v", args)
	}
}

func TestRunTypeError(t *testing.T) {
	code, _, stderr := runCmd(t, "-s", "package p\n\nfunc f() int { return x }\n")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "type checking failed")
	assert.Contains(t, stderr, "hint: ")
}

func TestRunHelp(t *testing.T) {
	code, stdout, _ := runCmd(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--files")
}

func TestRunJSON(t *testing.T) {
	code, stdout, stderr := runCmd(t, "--format", "json", "-s", source)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `"label": "add"`)
	assert.Contains(t, stdout, `"purity": "Impure"`)
}

func TestRunVerboseAndStats(t *testing.T) {
	code, stdout, stderr := runCmd(t, "-v", "--stats", "-s", source)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Unresolved routines:")
	assert.Contains(t, stdout, "time.Now:\tImpure")
	assert.Contains(t, stdout, "routines:       2")
}

func TestRunCheck(t *testing.T) {
	src := "package p\n\n//purity:pure\nfunc f() { println() }\n\n//purity:pure\nfunc g() {}\n"
	code, stdout, stderr := runCmd(t, "--check", "-s", src)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "input.go:4:6: f is Impure, expected Pure")
	assert.NotContains(t, stdout, "g is")
	assert.Contains(t, stderr, "1 purity directive violations")
}

func TestRunAnnotate(t *testing.T) {
	code, stdout, stderr := runCmd(t, "--annotate", "-s", source)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "// purity: Pure\nfunc add(x, y int) int")
	assert.Contains(t, stdout, "// purity: Impure\nfunc stamp() int64")
}

func TestRunAnnotateWrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.go", source)
	code, stdout, stderr := runCmd(t, "--annotate", "-w", path)
	assert.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "// purity: Pure\nfunc add(x, y int) int")
}
