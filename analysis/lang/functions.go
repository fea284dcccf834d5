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

// Package lang contains functions over the SSA and AST representations of Go programs.
package lang

import (
	"golang.org/x/tools/go/ssa"
)

// IsExternal returns true if function is external (in ssa, when Blocks is nil)
func IsExternal(function *ssa.Function) bool {
	// This is indicated in the ssa documentation
	return function.Blocks == nil
}

// IterateInstructions iterates through all the instructions in the function, in no specific order.
// It ignores the order in which blocks should be executed, but always starts with the first block.
func IterateInstructions(function *ssa.Function, f func(index int, instruction ssa.Instruction)) {
	// If this is an external function, return.
	if function.Blocks == nil {
		return
	}

	for _, block := range function.Blocks {
		for index, instruction := range block.Instrs {
			f(index, instruction)
		}
	}
}

// ReferencesGlobal returns true if one of the operands of the instruction is a package-level variable, of any
// package. Loads and stores of globals, and their address being taken, all reference the global.
func ReferencesGlobal(instruction ssa.Instruction) bool {
	var operands []*ssa.Value
	for _, operand := range instruction.Operands(operands) {
		if operand == nil || *operand == nil {
			continue
		}
		if _, ok := (*operand).(*ssa.Global); ok {
			return true
		}
	}
	return false
}

// Globals returns the package-level variables referenced in the body of function.
func Globals(function *ssa.Function) []*ssa.Global {
	seen := map[*ssa.Global]bool{}
	var globals []*ssa.Global
	IterateInstructions(function, func(_ int, instruction ssa.Instruction) {
		var operands []*ssa.Value
		for _, operand := range instruction.Operands(operands) {
			if operand == nil {
				continue
			}
			if g, ok := (*operand).(*ssa.Global); ok && !seen[g] {
				seen[g] = true
				globals = append(globals, g)
			}
		}
	})
	return globals
}

// WithAnonFuncs returns function and all the anonymous functions nested in function, transitively.
func WithAnonFuncs(function *ssa.Function) []*ssa.Function {
	fns := []*ssa.Function{function}
	for i := 0; i < len(fns); i++ {
		fns = append(fns, fns[i].AnonFuncs...)
	}
	return fns
}
