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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func checkEqualOnNonEmptyFields(t *testing.T, cid1 CodeIdentifier, cid2 CodeIdentifier) {
	cid2c := compileRegexes(cid2)
	if !cid1.equalOnNonEmptyFields(cid2c) {
		t.Errorf("%v should be equal modulo empty fields to %v", cid1, cid2)
	}
}

func checkNotEqualOnNonEmptyFields(t *testing.T, cid1 CodeIdentifier, cid2 CodeIdentifier) {
	cid2c := compileRegexes(cid2)
	if cid1.equalOnNonEmptyFields(cid2c) {
		t.Errorf("%v should not be equal modulo empty fields to %v", cid1, cid2)
	}
}

func TestCodeIdentifier_equalOnNonEmptyFields_selfEquals(t *testing.T) {
	cid1 := CodeIdentifier{Package: "a", Method: "b"}
	checkEqualOnNonEmptyFields(t, cid1, cid1)
}

func TestCodeIdentifier_equalOnNonEmptyFields_emptyMatchesAny(t *testing.T) {
	cid1 := CodeIdentifier{Package: "a", Method: "b", Receiver: "c"}
	cid2 := CodeIdentifier{Package: "de", Method: "234jbn", Receiver: "*T"}
	cidEmpty := CodeIdentifier{}
	checkEqualOnNonEmptyFields(t, cid1, cidEmpty)
	checkEqualOnNonEmptyFields(t, cid2, cidEmpty)
}

func TestCodeIdentifier_equalOnNonEmptyFields_oneDiff(t *testing.T) {
	cid1 := CodeIdentifier{Package: "a", Method: "b"}
	cid2 := CodeIdentifier{Package: "a"}
	checkEqualOnNonEmptyFields(t, cid1, cid2)
	checkNotEqualOnNonEmptyFields(t, cid2, cid1)
}

func TestCodeIdentifier_equalOnNonEmptyFields_regexes(t *testing.T) {
	cid1 := CodeIdentifier{Package: "main", Method: "b"}
	cid1bis := CodeIdentifier{Package: "command-line-arguments", Method: "b"}
	cid2 := CodeIdentifier{Package: "(main)|(command-line-arguments)$"}
	checkEqualOnNonEmptyFields(t, cid1, cid2)
	checkEqualOnNonEmptyFields(t, cid1bis, cid2)
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.LogLevel != int(DebugLevel) {
		t.Errorf("expected log-level 4, got %d", cfg.LogLevel)
	}
	if cfg.CallgraphMode != ClassHierarchyMode {
		t.Errorf("expected callgraph-mode cha, got %q", cfg.CallgraphMode)
	}
	if cfg.Workers() != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Workers())
	}
	if !cfg.ReportDependencies {
		t.Errorf("expected report-dependencies to be set")
	}
	if !cfg.Purity.UseDefaultBlacklist {
		t.Errorf("default blacklist should stay enabled when not specified")
	}
	if cfg.Purity.UseDefaultKnownPure {
		t.Errorf("default known-pure list should be disabled")
	}
	if len(cfg.Purity.Blacklist) != 2 {
		t.Fatalf("expected 2 blacklist entries, got %d", len(cfg.Purity.Blacklist))
	}
	if cfg.RelPath("x.go") != filepath.Join("testdata", "x.go") {
		t.Errorf("unexpected relative path %q", cfg.RelPath("x.go"))
	}
}

func TestConfigBlacklist(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	tests := []struct {
		name string
		cid  CodeIdentifier
		want bool
	}{
		{"time.Now", CodeIdentifier{Package: "time", Method: "Now"}, true},
		{"example.com/db.QueryRow", CodeIdentifier{Package: "example.com/db", Method: "QueryRow"}, true},
		{"example.com/db.Open", CodeIdentifier{Package: "example.com/db", Method: "Open"}, false},
		{"(*example.com/db.Conn).Close", CodeIdentifier{Package: "example.com/db", Method: "Close", Receiver: "*Conn"}, true},
		{"strings.ToUpper", CodeIdentifier{Package: "strings", Method: "ToUpper"}, false},
	}
	for _, test := range tests {
		if got := cfg.IsBlacklisted(test.name, test.cid); got != test.want {
			t.Errorf("IsBlacklisted(%s) = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestConfigKnownPure(t *testing.T) {
	cfg := NewDefault()
	if !cfg.IsKnownPure(CodeIdentifier{Package: "strings", Method: "ToUpper"}) {
		t.Errorf("strings.ToUpper should be known pure by default")
	}
	if !cfg.IsKnownPure(CodeIdentifier{Package: "fmt", Method: "Sprintf"}) {
		t.Errorf("fmt.Sprintf should be known pure by default")
	}
	if cfg.IsKnownPure(CodeIdentifier{Package: "fmt", Method: "Println"}) {
		t.Errorf("fmt.Println should not be known pure")
	}
	if cfg.IsKnownPure(CodeIdentifier{Package: "math/rand", Method: "Intn"}) {
		t.Errorf("math/rand.Intn should not match the math package pattern")
	}

	loaded, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.IsKnownPure(CodeIdentifier{Package: "strings", Method: "ToUpper"}) {
		t.Errorf("default known-pure list is disabled in the config")
	}
	if !loaded.IsKnownPure(CodeIdentifier{Package: "sort", Method: "SearchInts"}) {
		t.Errorf("sort.SearchInts should be known pure by config")
	}
}

func TestLoadEmptyConfigHasDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "empty.yaml"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.LogLevel != int(InfoLevel) || cfg.CallgraphMode != StaticMode {
		t.Errorf("expected default options, got %+v", cfg.Options)
	}
}

func TestLoadInvalidMode(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "bad_mode.yaml")); err == nil {
		t.Errorf("expected an error for an invalid callgraph mode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}

func TestMatchPkgFilter(t *testing.T) {
	cfg, err := Parse([]byte("options:\n  pkg-filter: \"^example.com/app\"\n"))
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	if !cfg.MatchPkgFilter("example.com/app/sub") {
		t.Errorf("package should match the filter")
	}
	if cfg.MatchPkgFilter("fmt") {
		t.Errorf("fmt should not match the filter")
	}
	if !NewDefault().MatchPkgFilter("fmt") {
		t.Errorf("an empty filter matches any package")
	}
}
