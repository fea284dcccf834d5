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

package graphutil

import (
	"sort"

	"github.com/yourbasic/graph"
)

// CycleGroups returns the strongly connected components of g that contain a cycle: components with at least two
// vertices, and single vertices with an edge to themselves. Each group is sorted in increasing order and groups
// are sorted by their smallest vertex.
func CycleGroups(g *Graph) [][]int {
	var groups [][]int
	for _, component := range graph.StrongComponents(g) {
		if len(component) == 1 && !g.HasEdge(component[0], component[0]) {
			continue
		}
		c := make([]int, len(component))
		copy(c, component)
		sort.Ints(c)
		groups = append(groups, c)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}
