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

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/internal/formatutil"
)

// PurityColor returns the name of the purity, colored when printed on a terminal
func PurityColor(p purity.Purity) string {
	switch p {
	case purity.Impure:
		return formatutil.Red(p)
	case purity.Unknown:
		return formatutil.Yellow(p)
	case purity.Pure:
		return formatutil.Green(p)
	default:
		return p.String()
	}
}

// WriteText writes one "<label>:\t<PURITY>" line per declared routine, sorted by label. In verbose mode, each
// routine is followed by its dependencies, and the unresolved routines, the recursive groups and the statistics of
// the run are printed after the routines.
func WriteText(w io.Writer, a *analysis.Analysis, verbose bool) error {
	var b strings.Builder
	res := a.Result
	for _, id := range sortedByLabel(res.Declared) {
		fmt.Fprintf(&b, "%s:\t%s\n", id.Label(), PurityColor(res.Purities[id]))
		if !verbose {
			continue
		}
		for _, dep := range res.Dependencies[id] {
			fmt.Fprintf(&b, "  -> %s (%s)\n", dep.Label(), PurityColor(res.Purities[dep]))
		}
	}
	if verbose {
		if unresolved := sortedByLabel(unresolvedOf(res)); len(unresolved) > 0 {
			fmt.Fprintf(&b, "%s\n", formatutil.Bold("Unresolved routines:"))
			for _, id := range unresolved {
				fmt.Fprintf(&b, "%s:\t%s\n", id.Label(), PurityColor(res.Purities[id]))
			}
		}
		if len(res.Groups) > 0 {
			fmt.Fprintf(&b, "%s\n", formatutil.Bold("Recursive groups:"))
			for _, group := range res.Groups {
				fmt.Fprintf(&b, "  {%s}\n", strings.Join(labelsOf(group), ", "))
			}
		}
		fmt.Fprintf(&b, "%s\n", formatutil.Faint(fmt.Sprintf("%d passes, %d routines settled",
			res.Stats.Passes, res.Stats.Settled)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteViolations writes one line per routine whose purity differs from its directive
func WriteViolations(w io.Writer, violations []analysis.Violation) error {
	var b strings.Builder
	for _, v := range violations {
		fmt.Fprintf(&b, "%s: %s is %s, expected %s\n", v.Position, v.Routine.Label(),
			PurityColor(v.Actual), PurityColor(v.Expected))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
