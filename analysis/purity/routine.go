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
	"fmt"

	"github.com/awslabs/go-purity/analysis/config"
)

// Kind distinguishes routines whose declaration is part of the analyzed program from routines that are only known
// by the name used at a call site.
type Kind uint8

const (
	// Resolved routines have a declaration with a body in the analyzed program.
	Resolved Kind = iota + 1
	// Unresolved routines are call targets without a known declaration.
	Unresolved
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	default:
		return "invalid"
	}
}

// Qualifier holds the parts of a routine name that are matched against the code identifiers of the configuration.
type Qualifier struct {
	// Package is the path of the package declaring the routine
	Package string
	// Receiver is the receiver type of a method, e.g. "*T", and empty for functions
	Receiver string
	// Name is the name of the function or method
	Name string
}

// RoutineID identifies a routine in the analysis. Two RoutineIDs are equal when they have the same kind and the
// same key; the label and qualifier are derived from the key by the code constructing the identifier, so they are
// never a source of inequality in practice.
// The key of a resolved routine is its fully qualified name, for example "(*example.com/p.T).M"; the key of an
// unresolved routine is the name at the call site.
type RoutineID struct {
	kind      Kind
	key       string
	label     string
	qualifier Qualifier
}

// NewResolved returns the identifier of a routine declared in the analyzed program. If label is empty, the key is
// used as label.
func NewResolved(key string, label string, q Qualifier) RoutineID {
	if label == "" {
		label = key
	}
	return RoutineID{kind: Resolved, key: key, label: label, qualifier: q}
}

// NewUnresolved returns the identifier of a call target without a known declaration.
func NewUnresolved(name string, q Qualifier) RoutineID {
	return RoutineID{kind: Unresolved, key: name, label: name, qualifier: q}
}

// Kind returns the kind of the routine
func (r RoutineID) Kind() Kind { return r.kind }

// Key returns the stable key of the routine
func (r RoutineID) Key() string { return r.key }

// Label returns the human-readable name of the routine used in reports
func (r RoutineID) Label() string { return r.label }

// Qualifier returns the qualifier of the routine
func (r RoutineID) Qualifier() Qualifier { return r.qualifier }

// HasKnownDeclaration returns true if the routine is declared in the analyzed program.
func (r RoutineID) HasKnownDeclaration() bool { return r.kind == Resolved }

// IsZero returns true for the zero RoutineID, which identifies no routine.
func (r RoutineID) IsZero() bool { return r.kind == 0 }

func (r RoutineID) String() string {
	if r.kind == Unresolved {
		return fmt.Sprintf("%s (unresolved)", r.label)
	}
	return r.label
}

// CodeIdentifier returns the code identifier matched against the blacklist and the known-pure list.
func (r RoutineID) CodeIdentifier() config.CodeIdentifier {
	return config.CodeIdentifier{
		Package:  r.qualifier.Package,
		Method:   r.qualifier.Name,
		Receiver: r.qualifier.Receiver,
	}
}

// Less orders routines by label, then by key, then resolved routines first.
func Less(a, b RoutineID) bool {
	if a.label != b.label {
		return a.label < b.label
	}
	if a.key != b.key {
		return a.key < b.key
	}
	return a.kind < b.kind
}
