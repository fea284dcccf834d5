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

package puritycheck_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/analysis/puritycheck"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAll(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get wd: %s", err)
	}

	testdata := filepath.Join(filepath.Dir(filepath.Dir(wd)), "testdata")
	results := analysistest.Run(t, testdata, puritycheck.Analyzer, "puritycheck")
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	res, ok := results[0].Result.(*purity.Result)
	if !ok {
		t.Fatalf("unexpected result type %T", results[0].Result)
	}
	if len(res.Declared) != 6 {
		t.Errorf("expected 6 declared routines, got %d", len(res.Declared))
	}
}
