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

// Package render prints the results of the purity analysis: the classification of the routines as text, as
// structured data (JSON, YAML, msgpack), as a GraphViz graph of the calls, or the SSA form of the routines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/internal/funcutil"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is an output format of the results
type Format string

const (
	// TextFormat prints one "<label>:\t<PURITY>" line per declared routine
	TextFormat Format = "text"
	// JSONFormat prints the Report as indented JSON
	JSONFormat Format = "json"
	// YAMLFormat prints the Report as YAML
	YAMLFormat Format = "yaml"
	// MsgpackFormat writes the Report in the msgpack binary format
	MsgpackFormat Format = "msgpack"
	// DotFormat prints the calls between routines in GraphViz format, colored by purity
	DotFormat Format = "dot"
	// SSAFormat prints the SSA form of the declared routines
	SSAFormat Format = "ssa"
)

// Formats lists all the output formats
var Formats = []Format{TextFormat, JSONFormat, YAMLFormat, MsgpackFormat, DotFormat, SSAFormat}

// ParseFormat returns the format named s
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q, expected one of %v", s, Formats)
}

// Report is the serializable form of the results of an analysis
type Report struct {
	Routines []RoutineReport `json:"routines" yaml:"routines" msgpack:"routines"`
	// Unresolved are the routines without known declaration that the declared routines depend on
	Unresolved []RoutineReport `json:"unresolved,omitempty" yaml:"unresolved,omitempty" msgpack:"unresolved,omitempty"`
	// Groups are the labels of mutually recursive routines
	Groups [][]string `json:"groups,omitempty" yaml:"groups,omitempty" msgpack:"groups,omitempty"`
	Passes int        `json:"passes" yaml:"passes" msgpack:"passes"`
}

// RoutineReport is the classification of one routine
type RoutineReport struct {
	Label        string   `json:"label" yaml:"label" msgpack:"label"`
	Key          string   `json:"key" yaml:"key" msgpack:"key"`
	Purity       string   `json:"purity" yaml:"purity" msgpack:"purity"`
	Position     string   `json:"position,omitempty" yaml:"position,omitempty" msgpack:"position,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty" msgpack:"dependencies,omitempty"`
}

// NewReport returns the report of the analysis. The declared routines are sorted by label. Dependencies are
// reported when withDependencies is set.
func NewReport(a *analysis.Analysis, withDependencies bool) Report {
	r := Report{Passes: a.Result.Stats.Passes}
	for _, id := range sortedByLabel(a.Result.Declared) {
		rr := RoutineReport{
			Label:  id.Label(),
			Key:    id.Key(),
			Purity: a.Result.Purities[id].String(),
		}
		if a.Resolver != nil {
			if pos := a.Resolver.Position(id); pos.IsValid() {
				rr.Position = pos.String()
			}
		}
		if withDependencies {
			rr.Dependencies = labelsOf(a.Result.Dependencies[id])
		}
		r.Routines = append(r.Routines, rr)
	}
	if withDependencies {
		for _, id := range sortedByLabel(unresolvedOf(a.Result)) {
			r.Unresolved = append(r.Unresolved, RoutineReport{
				Label:  id.Label(),
				Key:    id.Key(),
				Purity: a.Result.Purities[id].String(),
			})
		}
	}
	for _, group := range a.Result.Groups {
		r.Groups = append(r.Groups, labelsOf(group))
	}
	return r
}

// Write writes the results of the analysis to w in the format. The text report is verbose when verbose is set,
// and the structured reports contain the dependencies when verbose is set.
func Write(w io.Writer, format Format, a *analysis.Analysis, verbose bool) error {
	switch format {
	case TextFormat:
		return WriteText(w, a, verbose)
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(a, verbose))
	case YAMLFormat:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(a, verbose)); err != nil {
			return err
		}
		return enc.Close()
	case MsgpackFormat:
		return msgpack.NewEncoder(w).Encode(NewReport(a, verbose))
	case DotFormat:
		return WriteDot(w, a)
	case SSAFormat:
		return WriteSSA(w, a)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// ReadMsgpack decodes a report written with the msgpack format
func ReadMsgpack(r io.Reader) (Report, error) {
	var report Report
	if err := msgpack.NewDecoder(r).Decode(&report); err != nil {
		return Report{}, fmt.Errorf("failed to decode report: %w", err)
	}
	return report, nil
}

func sortedByLabel(ids []purity.RoutineID) []purity.RoutineID {
	sorted := append([]purity.RoutineID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return purity.Less(sorted[i], sorted[j]) })
	return sorted
}

func labelsOf(ids []purity.RoutineID) []string {
	var labels []string
	for _, id := range ids {
		labels = append(labels, id.Label())
	}
	return labels
}

// unresolvedOf returns the routines of the result that have no known declaration
func unresolvedOf(r *purity.Result) []purity.RoutineID {
	return funcutil.Filter(funcutil.SortedKeys(r.Purities, purity.Less), func(id purity.RoutineID) bool {
		return !id.HasKnownDeclaration()
	})
}
