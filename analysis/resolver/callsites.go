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

package resolver

import (
	"github.com/awslabs/go-purity/analysis/lang"
	"github.com/awslabs/go-purity/analysis/purity"
	"golang.org/x/tools/go/ssa"
)

// summary is the information collected from the body of a declared function
type summary struct {
	calls            []purity.RoutineID
	readsSharedState bool
}

// summarize collects the call targets of fn and whether fn references a package-level variable. It does not modify
// the resolver and can be called concurrently.
func (r *Resolver) summarize(fn *ssa.Function) summary {
	var s summary
	for _, f := range lang.WithAnonFuncs(fn) {
		lang.IterateInstructions(f, func(_ int, instr ssa.Instruction) {
			if !s.readsSharedState && lang.ReferencesGlobal(instr) {
				s.readsSharedState = true
			}
			if call, ok := instr.(ssa.CallInstruction); ok {
				s.calls = append(s.calls, r.callTargets(fn, call)...)
			}
		})
	}
	return s
}

// callTargets returns the routines that may be called at the call site in the body of the declared function fn,
// or in one of its anonymous functions.
func (r *Resolver) callTargets(fn *ssa.Function, call ssa.CallInstruction) []purity.RoutineID {
	common := call.Common()
	if b, ok := common.Value.(*ssa.Builtin); ok {
		if isReportedBuiltin(b) {
			return []purity.RoutineID{unresolvedBuiltin(b)}
		}
		return nil
	}
	if callee := common.StaticCallee(); callee != nil {
		return r.calleeTargets(fn, callee, map[*ssa.Function]bool{})
	}
	callees, ok := r.callees[call]
	if !ok {
		return []purity.RoutineID{unresolvedDynamic(common)}
	}
	var targets []purity.RoutineID
	for _, callee := range callees {
		targets = append(targets, r.calleeTargets(fn, callee, map[*ssa.Function]bool{})...)
	}
	return targets
}

// calleeTargets returns the routines called when fn calls callee. Calls to the anonymous functions of fn are part of
// fn and have no target. Synthetic wrappers, such as bound method closures and promoted methods, are replaced by the
// targets of the calls in their body.
func (r *Resolver) calleeTargets(fn *ssa.Function, callee *ssa.Function, visiting map[*ssa.Function]bool) []purity.RoutineID {
	root := rootOf(callee)
	if id, ok := r.ids[root]; ok {
		if root == fn && callee != fn {
			return nil
		}
		return []purity.RoutineID{id}
	}
	if callee.Synthetic == "" || lang.IsExternal(callee) || visiting[callee] {
		return []purity.RoutineID{unresolvedFunction(root)}
	}
	visiting[callee] = true
	var targets []purity.RoutineID
	lang.IterateInstructions(callee, func(_ int, instr ssa.Instruction) {
		call, ok := instr.(ssa.CallInstruction)
		if !ok {
			return
		}
		common := call.Common()
		if next := common.StaticCallee(); next != nil {
			targets = append(targets, r.calleeTargets(fn, next, visiting)...)
		} else if _, isBuiltin := common.Value.(*ssa.Builtin); !isBuiltin {
			targets = append(targets, unresolvedDynamic(common))
		}
	})
	return targets
}
