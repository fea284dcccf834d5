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

// WorkingSet is the frontier of the fixed-point computation: the routines of a lookup table that have no remaining
// dependency and have never been in the frontier before. The history of the working set only grows, so each routine
// is in the frontier at most once during an analysis.
type WorkingSet struct {
	table   *LookupTable
	current []RoutineID
	history map[RoutineID]bool
}

// NewWorkingSet returns the working set of the table, with its frontier computed.
func NewWorkingSet(t *LookupTable) *WorkingSet {
	w := &WorkingSet{table: t, history: map[RoutineID]bool{}}
	w.Recompute()
	return w
}

// Recompute replaces the frontier with the routines that have no dependency and were never in the frontier.
func (w *WorkingSet) Recompute() {
	w.current = w.current[:0]
	for _, e := range w.table.entries {
		if len(e.deps) == 0 && !w.history[e.id] {
			w.current = append(w.current, e.id)
			w.history[e.id] = true
		}
	}
}

// Routines returns a copy of the frontier, in the insertion order of the lookup table
func (w *WorkingSet) Routines() []RoutineID {
	ids := make([]RoutineID, len(w.current))
	copy(ids, w.current)
	return ids
}

// Len returns the size of the frontier
func (w *WorkingSet) Len() int {
	return len(w.current)
}

// Seen returns true if the routine has been in the frontier
func (w *WorkingSet) Seen(id RoutineID) bool {
	return w.history[id]
}

// NumSeen returns the number of routines that have been in the frontier
func (w *WorkingSet) NumSeen() int {
	return len(w.history)
}
