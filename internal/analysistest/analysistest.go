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

// Package analysistest contains helpers to run the purity analysis on the test programs of the testdata folders.
package analysistest

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"testing"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/config"
)

// ReadSources returns the Go files of the directory dir of fsys, sorted by name.
func ReadSources(fsys fs.FS, dir string) ([]analysis.Source, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read test directory %s: %w", dir, err)
	}
	var sources []analysis.Source
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		filename := path.Join(dir, entry.Name())
		b, err := fs.ReadFile(fsys, filename)
		if err != nil {
			return nil, fmt.Errorf("could not read test file %s: %w", filename, err)
		}
		sources = append(sources, analysis.Source{Filename: filename, Text: string(b)})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Filename < sources[j].Filename })
	return sources, nil
}

// LoadConfig loads the config.yaml of the directory dir of fsys, or returns the default configuration if there is
// none.
func LoadConfig(fsys fs.FS, dir string) (*config.Config, error) {
	b, err := fs.ReadFile(fsys, path.Join(dir, "config.yaml"))
	if err != nil {
		return config.NewDefault(), nil
	}
	return config.Parse(b)
}

// LoadTest runs the purity analysis on the Go files of the directory dir of fsys, with the config.yaml of the
// directory if there is one.
func LoadTest(t *testing.T, fsys fs.FS, dir string) *analysis.Analysis {
	t.Helper()
	sources, err := ReadSources(fsys, dir)
	if err != nil {
		t.Fatalf("failed to read test sources: %v", err)
	}
	cfg, err := LoadConfig(fsys, dir)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	a, err := analysis.AnalyzeSources(context.Background(), sources, cfg, config.NewDiscardLogGroup())
	if err != nil {
		t.Fatalf("failed to analyze %s: %v", dir, err)
	}
	return a
}

// CheckDirectives checks that every function of the analyzed program with a directive comment, e.g.
// `//purity:impure`, has the expected purity. It fails the test if the program has no directive.
func CheckDirectives(t *testing.T, a *analysis.Analysis) {
	t.Helper()
	if len(a.Loaded.Directives) == 0 {
		t.Fatalf("test program has no purity directive")
	}
	for _, v := range a.CheckDirectives() {
		t.Errorf("%s: %s is %s, expected %s", v.Position, v.Routine.Label(), v.Actual, v.Expected)
	}
}
