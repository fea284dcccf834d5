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

	"github.com/awslabs/go-purity/analysis/config"
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/callgraph/cha"
	"golang.org/x/tools/go/callgraph/static"
	"golang.org/x/tools/go/callgraph/vta"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// ComputeCallgraph computes the call graph of prog using the provided mode. The call graph is used to resolve
// the dynamic calls of the analyzed routines: in StaticMode, dynamic calls are never resolved.
func ComputeCallgraph(mode config.CallgraphMode, prog *ssa.Program) (*callgraph.Graph, error) {
	switch mode {
	case config.StaticMode, "":
		// Build the callgraph using only static analysis.
		return static.CallGraph(prog), nil
	case config.ClassHierarchyMode:
		// Build the callgraph using the Class Hierarchy Analysis
		// See the documentation, and
		// "Optimization of Object-Oriented Programs Using Static Class Hierarchy Analysis",
		// J. Dean, D. Grove, and C. Chambers, ECOOP'95.
		return cha.CallGraph(prog), nil
	case config.VariableTypeMode:
		// The variable type analysis refines the class hierarchy call graph over all the functions of the program
		return vta.CallGraph(ssautil.AllFunctions(prog), cha.CallGraph(prog)), nil
	default:
		return nil, fmt.Errorf("unsupported callgraph analysis mode %q", mode)
	}
}
