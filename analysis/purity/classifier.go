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

import "github.com/awslabs/go-purity/analysis/config"

// A Classifier decides the purity of a routine from its name and from whether its body reads shared mutable state.
// The blacklist and the known-pure list come from the configuration given at construction and never change.
type Classifier struct {
	config *config.Config
}

// NewClassifier returns a classifier for the lists of cfg. A nil cfg is the default configuration.
func NewClassifier(cfg *config.Config) *Classifier {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	return &Classifier{config: cfg}
}

// Blacklisted returns true if the routine is known to be impure.
func (c *Classifier) Blacklisted(id RoutineID) bool {
	return c.config.IsBlacklisted(id.Key(), id.CodeIdentifier())
}

// KnownPure returns true if the routine has no declaration but is configured to be pure.
func (c *Classifier) KnownPure(id RoutineID) bool {
	return !id.HasKnownDeclaration() && !c.Blacklisted(id) && c.config.IsKnownPure(id.CodeIdentifier())
}

// Classify returns the purity of id and true when the classifier can decide it:
//   - blacklisted routines are Impure
//   - routines reading shared mutable state are Impure
//   - routines without a declaration that are not known to be pure are Unknown
//
// Otherwise, it returns false and the purity of the routine is decided by its dependencies.
func (c *Classifier) Classify(id RoutineID, readsSharedState bool) (Purity, bool) {
	switch {
	case c.Blacklisted(id):
		return Impure, true
	case readsSharedState:
		return Impure, true
	case !id.HasKnownDeclaration() && !c.config.IsKnownPure(id.CodeIdentifier()):
		return Unknown, true
	default:
		return Pure, false
	}
}

// LeafPurity returns the initial purity of a call target without a declaration.
func (c *Classifier) LeafPurity(id RoutineID) Purity {
	if c.KnownPure(id) {
		return Pure
	}
	return Unknown
}
