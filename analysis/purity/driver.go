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
	"context"

	"github.com/awslabs/go-purity/analysis/config"
)

// Stats are the statistics of a run of the fixed-point computation.
type Stats struct {
	// Passes is the number of passes that settled at least one routine
	Passes int
	// Settled is the number of routines settled
	Settled int
	// Groups is the number of groups of mutually recursive routines
	Groups int
}

// Driver runs the fixed-point computation over a lookup table. It owns the table for the duration of the run.
type Driver struct {
	table      *LookupTable
	workingSet *WorkingSet
	program    Program
	classifier *Classifier
	logger     *config.LogGroup
	stats      Stats
}

// NewDriver returns a driver for the table t, built from the program p.
func NewDriver(t *LookupTable, p Program, c *Classifier, logger *config.LogGroup) *Driver {
	if logger == nil {
		logger = config.NewDiscardLogGroup()
	}
	return &Driver{
		table:      t,
		workingSet: NewWorkingSet(t),
		program:    p,
		classifier: c,
		logger:     logger,
		stats:      Stats{Groups: len(t.Groups())},
	}
}

// Stats returns the statistics of the driver
func (d *Driver) Stats() Stats {
	return d.stats
}

// evaluate returns the purity of a routine of the frontier: the meet of its current purity, which accounts for the
// purity of its dependencies, and the decision of the classifier.
func (d *Driver) evaluate(id RoutineID) Purity {
	current := d.table.Purity(id)
	reads := id.HasKnownDeclaration() && d.program.ReadsSharedState(id)
	if p, ok := d.classifier.Classify(id, reads); ok {
		return Meet(current, p)
	}
	return current
}

// Pass settles every routine of the frontier: its purity is set and propagated to its callers. Members of a cycle
// group are settled together with the meet of their purities. The frontier is recomputed at the end of the pass.
// Pass returns true if some routine has been settled.
func (d *Driver) Pass() bool {
	frontier := d.workingSet.Routines()
	if len(frontier) == 0 {
		return false
	}
	settled := map[RoutineID]bool{}
	for _, id := range frontier {
		if settled[id] {
			continue
		}
		members := d.table.Group(id)
		if members == nil {
			members = []RoutineID{id}
		}
		verdict := Pure
		for _, member := range members {
			if !d.workingSet.Seen(member) {
				invariantf("Pass", member, "member of the group of %s is not in the frontier", id.Key())
			}
			verdict = Meet(verdict, d.evaluate(member))
		}
		for _, member := range members {
			d.settle(member, verdict)
			settled[member] = true
		}
	}
	d.stats.Passes++
	d.workingSet.Recompute()
	return true
}

func (d *Driver) settle(id RoutineID, p Purity) {
	d.table.SetPurity(id, p)
	callers := d.table.Propagate(id)
	d.stats.Settled++
	d.logger.Tracef("settled %s: %s (%d callers)", id.Key(), p, len(callers))
}

// Run repeats passes until a pass settles no routine. The context is checked between passes.
// When the computation ends, every routine of the table has been settled.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.logger.Debugf("pass %d: %d routines in frontier", d.stats.Passes+1, d.workingSet.Len())
		if !d.Pass() {
			break
		}
	}
	if residual := d.table.Snapshot(); len(residual) > 0 || d.workingSet.NumSeen() != d.table.Len() {
		for _, id := range d.table.Routines() {
			if len(residual[id]) > 0 || !d.workingSet.Seen(id) {
				invariantf("Run", id, "routine was not settled, %d dependencies remaining", len(residual[id]))
			}
		}
	}
	return nil
}

// Result is the outcome of an analysis.
type Result struct {
	// Purities maps every routine of the analysis, declared or not, to its purity
	Purities map[RoutineID]Purity
	// Declared are the routines declared in the analyzed program, in program order
	Declared []RoutineID
	// Dependencies are the dependencies of the declared routines after the table was built
	Dependencies map[RoutineID][]RoutineID
	// Calls are the direct call sites of the declared routines
	Calls map[RoutineID][]RoutineID
	// Groups are the groups of mutually recursive routines
	Groups [][]RoutineID
	// Stats are the statistics of the fixed-point computation
	Stats Stats
}

// DeclaredPurities returns the purities of the declared routines only
func (r *Result) DeclaredPurities() map[RoutineID]Purity {
	m := make(map[RoutineID]Purity, len(r.Declared))
	for _, id := range r.Declared {
		m[id] = r.Purities[id]
	}
	return m
}

// Run builds the lookup table of p and computes the purity of every routine.
func Run(ctx context.Context, p Program, c *Classifier, logger *config.LogGroup) (*Result, error) {
	if c == nil {
		c = NewClassifier(nil)
	}
	table := NewLookupTable()
	table.Build(p, c)

	declared := p.Routines()
	result := &Result{
		Declared:     declared,
		Dependencies: map[RoutineID][]RoutineID{},
		Calls:        make(map[RoutineID][]RoutineID, len(declared)),
		Groups:       table.Groups(),
	}
	for _, id := range declared {
		result.Dependencies[id] = table.Dependencies(id)
		result.Calls[id] = uniqueCalls(p.CallSites(id))
	}

	driver := NewDriver(table, p, c, logger)
	if err := driver.Run(ctx); err != nil {
		return nil, err
	}
	result.Purities = table.Purities()
	result.Stats = driver.Stats()
	return result, nil
}

func uniqueCalls(calls []RoutineID) []RoutineID {
	seen := map[RoutineID]bool{}
	var unique []RoutineID
	for _, c := range calls {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	return unique
}
