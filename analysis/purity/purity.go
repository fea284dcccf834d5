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
	"strings"
)

// Purity is the classification of a routine. Purities are totally ordered from the most restrictive to the least
// restrictive: Impure < Unknown < ParametricallyImpure < Pure.
type Purity uint8

const (
	// Impure routines have an observable effect, or read shared mutable state.
	Impure Purity = iota
	// Unknown routines depend on a routine whose body is not available to the analysis.
	Unknown
	// ParametricallyImpure is reserved for routines whose effects depend on their arguments. It is never assigned.
	ParametricallyImpure
	// Pure routines have no effect and do not depend on shared mutable state.
	Pure
)

var purityNames = [...]string{
	Impure:               "Impure",
	Unknown:              "Unknown",
	ParametricallyImpure: "ParametricallyImpure",
	Pure:                 "Pure",
}

// Purities lists all the purities in increasing order.
var Purities = []Purity{Impure, Unknown, ParametricallyImpure, Pure}

func (p Purity) String() string {
	if int(p) < len(purityNames) {
		return purityNames[p]
	}
	return fmt.Sprintf("Purity(%d)", p)
}

// IsValid returns true if p is one of the four purities.
func (p Purity) IsValid() bool {
	return p <= Pure
}

// Meet returns the greatest lower bound of a and b, that is the worst of the two classifications.
func Meet(a, b Purity) Purity {
	if a < b {
		return a
	}
	return b
}

// Parse returns the purity whose name is s.
func Parse(s string) (Purity, error) {
	for p, name := range purityNames {
		if strings.EqualFold(name, s) {
			return Purity(p), nil
		}
	}
	return Impure, fmt.Errorf("unknown purity %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (p Purity) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid purity %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Purity) UnmarshalText(text []byte) error {
	x, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = x
	return nil
}
