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

// fn returns the identifier of a routine declared in package main
func fn(name string) RoutineID {
	return NewResolved("main."+name, name, Qualifier{Package: "main", Name: name})
}

// ext returns the identifier of a routine of package pkg without declaration
func ext(pkg, name string) RoutineID {
	return NewUnresolved(pkg+"."+name, Qualifier{Package: pkg, Name: name})
}

// labels returns the labels of the routines, in order
func labels(ids []RoutineID) []string {
	var s []string
	for _, id := range ids {
		s = append(s, id.Label())
	}
	return s
}

// byLabel maps the labels of the routines in the map to their purity
func byLabel(m map[RoutineID]Purity) map[string]Purity {
	r := map[string]Purity{}
	for id, p := range m {
		r[id.Label()] = p
	}
	return r
}
