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

import "fmt"

// InvariantError is the value of the panics raised when an operation is applied to a routine or an edge that is not
// in the lookup table. It signals a bug in the construction of the table and is never recovered by this package.
type InvariantError struct {
	// Op is the operation that failed
	Op string
	// Routine is the routine the operation was applied to
	Routine RoutineID
	// Msg describes the violation
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s(%s): %s", e.Op, e.Routine.Key(), e.Msg)
}

func invariantf(op string, r RoutineID, format string, args ...any) {
	panic(&InvariantError{Op: op, Routine: r, Msg: fmt.Sprintf(format, args...)})
}
