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

import (
	"github.com/awslabs/go-purity/internal/graphutil"
	"golang.org/x/exp/slices"
)

// noGroup is the group of routines that are not part of a recursive cycle.
const noGroup = -1

type entry struct {
	id     RoutineID
	deps   map[RoutineID]bool
	purity Purity
	// group is the index of the cycle group of the routine in LookupTable.groups, or noGroup
	group int
}

// LookupTable is the dependency graph of the analysis. Each routine has an entry holding its purity and the set of
// routines it still depends on. Entries are stored in insertion order, which is the order in which routines are
// reported.
type LookupTable struct {
	entries []*entry
	index   map[RoutineID]int

	// groups are the sets of mutually recursive routines, see Build
	groups [][]RoutineID
}

// NewLookupTable returns an empty table
func NewLookupTable() *LookupTable {
	return &LookupTable{
		index: map[RoutineID]int{},
	}
}

func (t *LookupTable) get(op string, id RoutineID) *entry {
	i, ok := t.index[id]
	if !ok {
		invariantf(op, id, "routine is not in the lookup table")
	}
	return t.entries[i]
}

// AddRoutine adds a Pure routine without dependencies to the table, if it is not already in the table.
func (t *LookupTable) AddRoutine(id RoutineID) {
	t.addRoutine(id, Pure)
}

func (t *LookupTable) addRoutine(id RoutineID, p Purity) {
	if _, ok := t.index[id]; ok {
		return
	}
	t.index[id] = len(t.entries)
	t.entries = append(t.entries, &entry{id: id, deps: map[RoutineID]bool{}, purity: p, group: noGroup})
}

// Has returns true if the routine is in the table
func (t *LookupTable) Has(id RoutineID) bool {
	_, ok := t.index[id]
	return ok
}

// Len returns the number of routines in the table
func (t *LookupTable) Len() int {
	return len(t.entries)
}

// Routines returns the routines of the table in insertion order
func (t *LookupTable) Routines() []RoutineID {
	ids := make([]RoutineID, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.id
	}
	return ids
}

// Build adds every routine declared in p to the table with the transitive closure of its call sites as
// dependencies. Call targets that are not declared in p are added as leaves without dependencies, with the
// purity given by the classifier (Unknown, unless known to be pure).
//
// Routines that depend on themselves, directly or through other routines, are grouped by strongly connected
// component of the call graph. The dependencies between members of a group are removed, and the group is recorded
// so that the members are settled together (see Groups).
func (t *LookupTable) Build(p Program, c *Classifier) {
	declared := map[RoutineID]bool{}
	for _, d := range p.Routines() {
		declared[d] = true
		t.AddRoutine(d)
	}

	for _, d := range p.Routines() {
		e := t.entries[t.index[d]]
		// the routine is not marked visited before the walk: it is in its own closure only if it is recursive
		visited := e.deps
		var walk func(r RoutineID)
		walk = func(r RoutineID) {
			for _, callee := range p.CallSites(r) {
				if visited[callee] {
					continue
				}
				visited[callee] = true
				if declared[callee] {
					walk(callee)
				} else {
					t.addRoutine(callee, c.LeafPurity(callee))
				}
			}
		}
		walk(d)
	}

	t.groupCycles(p, declared)
}

// groupCycles computes the cycle groups of the direct call graph of p and removes the intra-group dependencies.
func (t *LookupTable) groupCycles(p Program, declared map[RoutineID]bool) {
	g := graphutil.New(make([]string, len(t.entries)))
	for _, d := range p.Routines() {
		from := t.index[d]
		for _, callee := range p.CallSites(d) {
			if declared[callee] {
				g.AddEdge(from, t.index[callee])
			}
		}
	}

	for _, component := range graphutil.CycleGroups(g) {
		group := make([]RoutineID, len(component))
		for i, v := range component {
			group[i] = t.entries[v].id
		}
		gid := len(t.groups)
		t.groups = append(t.groups, group)
		for _, v := range component {
			e := t.entries[v]
			e.group = gid
			for _, member := range group {
				delete(e.deps, member)
			}
		}
	}
}

// Groups returns the groups of mutually recursive routines computed by Build
func (t *LookupTable) Groups() [][]RoutineID {
	return t.groups
}

// Group returns the cycle group of the routine, or nil if the routine is not recursive.
func (t *LookupTable) Group(id RoutineID) []RoutineID {
	e := t.get("Group", id)
	if e.group == noGroup {
		return nil
	}
	return t.groups[e.group]
}

// AddDependency records that caller depends on callee. Both routines must be in the table.
func (t *LookupTable) AddDependency(caller, callee RoutineID) {
	t.get("AddDependency", callee)
	t.get("AddDependency", caller).deps[callee] = true
}

// RemoveDependency removes the dependency of caller on callee. Both routines and the dependency must exist.
func (t *LookupTable) RemoveDependency(caller, callee RoutineID) {
	t.get("RemoveDependency", callee)
	e := t.get("RemoveDependency", caller)
	if !e.deps[callee] {
		invariantf("RemoveDependency", caller, "no dependency on %s", callee.Key())
	}
	delete(e.deps, callee)
}

// Purity returns the purity of the routine
func (t *LookupTable) Purity(id RoutineID) Purity {
	return t.get("Purity", id).purity
}

// SetPurity sets the purity of the routine
func (t *LookupTable) SetPurity(id RoutineID, p Purity) {
	t.get("SetPurity", id).purity = p
}

// Dependencies returns the routines id currently depends on, sorted with Less.
func (t *LookupTable) Dependencies(id RoutineID) []RoutineID {
	e := t.get("Dependencies", id)
	deps := make([]RoutineID, 0, len(e.deps))
	for d := range e.deps {
		deps = append(deps, d)
	}
	slices.SortFunc(deps, Less)
	return deps
}

// HasDependencies returns true if the routine still depends on some other routine.
func (t *LookupTable) HasDependencies(id RoutineID) bool {
	return len(t.get("HasDependencies", id).deps) > 0
}

// CallersOf returns the routines that currently depend on id, in insertion order.
func (t *LookupTable) CallersOf(id RoutineID) []RoutineID {
	t.get("CallersOf", id)
	var callers []RoutineID
	for _, e := range t.entries {
		if e.deps[id] {
			callers = append(callers, e.id)
		}
	}
	return callers
}

// Propagate lowers the purity of every routine depending on id to at most the purity of id, and removes those
// dependencies. It returns the callers that were updated.
func (t *LookupTable) Propagate(id RoutineID) []RoutineID {
	p := t.Purity(id)
	callers := t.CallersOf(id)
	for _, caller := range callers {
		e := t.entries[t.index[caller]]
		e.purity = Meet(e.purity, p)
		t.RemoveDependency(caller, id)
	}
	return callers
}

// Snapshot returns the current dependencies of every routine of the table that has some.
func (t *LookupTable) Snapshot() map[RoutineID][]RoutineID {
	snapshot := map[RoutineID][]RoutineID{}
	for _, e := range t.entries {
		if len(e.deps) > 0 {
			snapshot[e.id] = t.Dependencies(e.id)
		}
	}
	return snapshot
}

// Purities returns the purity of every routine of the table
func (t *LookupTable) Purities() map[RoutineID]Purity {
	m := make(map[RoutineID]Purity, len(t.entries))
	for _, e := range t.entries {
		m[e.id] = e.purity
	}
	return m
}
