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

const (
	// DefaultNumWorkers is the default number of goroutines collecting call sites.
	DefaultNumWorkers = 4
)

// CallgraphMode is the algorithm used to resolve the targets of dynamic calls.
type CallgraphMode string

const (
	// StaticMode does not resolve dynamic calls: every dynamic call site is an unresolved routine.
	StaticMode CallgraphMode = "static"
	// ClassHierarchyMode resolves dynamic calls with the class hierarchy analysis (coarse, fast).
	ClassHierarchyMode CallgraphMode = "cha"
	// VariableTypeMode resolves dynamic calls with the variable type analysis, refining the class hierarchy
	// analysis call graph.
	VariableTypeMode CallgraphMode = "vta"
)

// CallgraphModes lists all the valid call graph modes.
var CallgraphModes = []CallgraphMode{StaticMode, ClassHierarchyMode, VariableTypeMode}

// IsValid returns true if m is one of CallgraphModes.
func (m CallgraphMode) IsValid() bool {
	for _, x := range CallgraphModes {
		if x == m {
			return true
		}
	}
	return false
}
