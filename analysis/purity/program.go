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

package purity

// Program is the input of the analysis: the routines declared in the analyzed program, their call sites, and
// whether their body reads shared mutable state.
type Program interface {
	// Routines returns the declared routines, in a deterministic order.
	Routines() []RoutineID

	// CallSites returns the targets of the calls in the body of a declared routine. Targets without a declaration
	// are unresolved identifiers.
	CallSites(id RoutineID) []RoutineID

	// ReadsSharedState returns true if the body of the routine reads a package-level variable.
	ReadsSharedState(id RoutineID) bool
}

// Declarations is a Program held in memory. It is built by the resolvers of the analysis and used directly in tests.
type Declarations struct {
	order  []RoutineID
	calls  map[RoutineID][]RoutineID
	shared map[RoutineID]bool
}

// NewDeclarations returns an empty program
func NewDeclarations() *Declarations {
	return &Declarations{
		calls:  map[RoutineID][]RoutineID{},
		shared: map[RoutineID]bool{},
	}
}

// Declare adds the routine id to the program with the call sites calls. Declaring a routine again adds calls to the
// ones of its first declaration, and marks it as reading shared state if either declaration does.
func (d *Declarations) Declare(id RoutineID, readsSharedState bool, calls ...RoutineID) {
	if _, ok := d.calls[id]; !ok {
		d.order = append(d.order, id)
		d.calls[id] = nil
	}
	d.calls[id] = append(d.calls[id], calls...)
	d.shared[id] = d.shared[id] || readsSharedState
}

// IsDeclared returns true if id has been declared
func (d *Declarations) IsDeclared(id RoutineID) bool {
	_, ok := d.calls[id]
	return ok
}

// Len returns the number of declared routines
func (d *Declarations) Len() int {
	return len(d.order)
}

// Routines returns the declared routines in declaration order
func (d *Declarations) Routines() []RoutineID {
	return d.order
}

// CallSites returns the call sites of id
func (d *Declarations) CallSites(id RoutineID) []RoutineID {
	return d.calls[id]
}

// ReadsSharedState returns true if id has been declared as reading shared state
func (d *Declarations) ReadsSharedState(id RoutineID) bool {
	return d.shared[id]
}
