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

package analysis

import (
	"fmt"
	"io"

	"github.com/awslabs/go-purity/analysis/lang"
	"github.com/awslabs/go-purity/analysis/purity"
)

// Statistics summarizes the analyzed functions and the outcome of the analysis.
type Statistics struct {
	NumberOfRoutines      int
	NumberOfExternals     int
	NumberOfClosures      int
	NumberOfBlocks        int
	NumberOfInstructions  int
	NumberOfCycleGroups   int
	NumberOfPasses        int
	NumberOfGlobalReaders int
	ByPurity              map[purity.Purity]int
}

// ComputeStatistics returns the statistics of the analysis.
func ComputeStatistics(a *Analysis) Statistics {
	s := Statistics{
		NumberOfRoutines:    len(a.Result.Declared),
		NumberOfExternals:   len(a.Result.Purities) - len(a.Result.Declared),
		NumberOfCycleGroups: a.Result.Stats.Groups,
		NumberOfPasses:      a.Result.Stats.Passes,
		ByPurity:            map[purity.Purity]int{},
	}
	for _, p := range a.Result.DeclaredPurities() {
		s.ByPurity[p]++
	}
	if a.Resolver == nil {
		return s
	}
	for _, fn := range a.Resolver.Functions() {
		readsGlobals := false
		for i, f := range lang.WithAnonFuncs(fn) {
			if i > 0 {
				s.NumberOfClosures++
			}
			s.NumberOfBlocks += len(f.Blocks)
			for _, b := range f.Blocks {
				s.NumberOfInstructions += len(b.Instrs)
			}
			readsGlobals = readsGlobals || len(lang.Globals(f)) > 0
		}
		if readsGlobals {
			s.NumberOfGlobalReaders++
		}
	}
	return s
}

// Write prints the statistics to w
func (s Statistics) Write(w io.Writer) {
	fmt.Fprintf(w, "routines:       %d (%d closures, %d blocks, %d instructions)\n",
		s.NumberOfRoutines, s.NumberOfClosures, s.NumberOfBlocks, s.NumberOfInstructions)
	fmt.Fprintf(w, "externals:      %d\n", s.NumberOfExternals)
	fmt.Fprintf(w, "global readers: %d\n", s.NumberOfGlobalReaders)
	fmt.Fprintf(w, "cycle groups:   %d\n", s.NumberOfCycleGroups)
	fmt.Fprintf(w, "passes:         %d\n", s.NumberOfPasses)
	for _, p := range purity.Purities {
		fmt.Fprintf(w, "%-15s %d\n", p.String()+":", s.ByPurity[p])
	}
}
