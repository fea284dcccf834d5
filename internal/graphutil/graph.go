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

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
)

// Graph is a directed graph over dense integer vertices 0..Order()-1 labelled by strings. It satisfies both the
// graph.Iterator of github.com/yourbasic/graph and gonum's graph.Directed, so that the same value can be passed to
// the component algorithms and to the DOT encoder.
type Graph struct {
	// labels[v] is the label of vertex v
	labels []string

	// attrs[v] are the DOT attributes of vertex v
	attrs map[int][]encoding.Attribute

	// out[v] is the sorted list of successors of v
	out [][]int

	// in[v] is the sorted list of predecessors of v
	in [][]int
}

// New returns a graph with one vertex per label and no edges.
func New(labels []string) *Graph {
	return &Graph{
		labels: labels,
		attrs:  map[int][]encoding.Attribute{},
		out:    make([][]int, len(labels)),
		in:     make([][]int, len(labels)),
	}
}

// AddEdge adds the edge from -> to. Adding an existing edge has no effect.
func (g *Graph) AddEdge(from, to int) {
	if !insertSorted(&g.out[from], to) {
		return
	}
	insertSorted(&g.in[to], from)
}

// SetAttributes sets the DOT attributes of vertex v.
func (g *Graph) SetAttributes(v int, attrs ...encoding.Attribute) {
	g.attrs[v] = attrs
}

// Label returns the label of vertex v
func (g *Graph) Label(v int) string {
	return g.labels[v]
}

// HasEdge returns true if there is an edge from -> to
func (g *Graph) HasEdge(from, to int) bool {
	s := g.out[from]
	i := sort.SearchInts(s, to)
	return i < len(s) && s[i] == to
}

func insertSorted(s *[]int, x int) bool {
	i := sort.SearchInts(*s, x)
	if i < len(*s) && (*s)[i] == x {
		return false
	}
	*s = append(*s, 0)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = x
	return true
}

// *************** yourbasic graph.Iterator implementation **********************

// Order implements the order of the graph.Iterator interface for the Graph
func (g *Graph) Order() int {
	return len(g.labels)
}

// Visit implements the graph.Iterator interface for the Graph
func (g *Graph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < 0 || v >= len(g.out) {
		return false
	}
	for _, w := range g.out[v] {
		if do(w, 1) {
			return true
		}
	}
	return false
}

// *************** gonum graph.Directed implementation **********************

func (g *Graph) valid(id int64) bool {
	return id >= 0 && id < int64(len(g.labels))
}

// Node implements the gonum Graph interface
func (g *Graph) Node(id int64) graph.Node {
	if !g.valid(id) {
		return nil
	}
	return Node{g: g, id: int(id)}
}

// Nodes returns the set of nodes in the graph
func (g *Graph) Nodes() graph.Nodes {
	ids := make([]int, len(g.labels))
	for i := range ids {
		ids[i] = i
	}
	return newNodeSet(g, ids)
}

// From returns the successors of the node id
func (g *Graph) From(id int64) graph.Nodes {
	if !g.valid(id) {
		return newNodeSet(g, nil)
	}
	return newNodeSet(g, g.out[id])
}

// To returns the predecessors of the node id
func (g *Graph) To(id int64) graph.Nodes {
	if !g.valid(id) {
		return newNodeSet(g, nil)
	}
	return newNodeSet(g, g.in[id])
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between the two node identifiers
func (g *Graph) HasEdgeBetween(xid, yid int64) bool {
	return g.HasEdgeFromTo(xid, yid) || g.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo returns whether there is a directed edge from uid to vid
func (g *Graph) HasEdgeFromTo(uid, vid int64) bool {
	return g.valid(uid) && g.valid(vid) && g.HasEdge(int(uid), int(vid))
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (g *Graph) Edge(uid, vid int64) graph.Edge {
	if !g.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return Edge{from: Node{g: g, id: int(uid)}, to: Node{g: g, id: int(vid)}}
}

// *************** Nodes implementation **********************

// Node is a vertex of a Graph. It implements graph.Node, and the DOT encoder's Node and Attributer interfaces.
type Node struct {
	g  *Graph
	id int
}

// ID returns the id of the node
func (n Node) ID() int64 {
	return int64(n.id)
}

// DOTID returns the label of the node, used as the node identifier in DOT output
func (n Node) DOTID() string {
	return n.g.labels[n.id]
}

// Attributes returns the DOT attributes of the node
func (n Node) Attributes() []encoding.Attribute {
	return n.g.attrs[n.id]
}

func (n Node) String() string {
	return n.g.labels[n.id]
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of nodes
type NodeSet struct {
	g   *Graph
	ids []int

	// cur is the current index of the iterator; -1 before the first call to Next
	cur int
}

func newNodeSet(g *Graph, ids []int) *NodeSet {
	return &NodeSet{g: g, ids: ids, cur: -1}
}

// Next moves the current node to the next, and returns true if such a node exists.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	ns.cur = len(ns.ids)
	return false
}

// Len returns the number of nodes remaining in the iterator
func (ns *NodeSet) Len() int {
	if ns.cur >= len(ns.ids) {
		return 0
	}
	return len(ns.ids) - ns.cur - 1
}

// Reset resets the iterator to its initial state
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node returns the current node in the set, or nil if the iterator is not on a node
func (ns *NodeSet) Node() graph.Node {
	if ns.cur < 0 || ns.cur >= len(ns.ids) {
		return nil
	}
	return Node{g: ns.g, id: ns.ids[ns.cur]}
}

// *************** Edge implementation **********************

// Edge implements the graph.Edge interface
type Edge struct {
	from Node
	to   Node
}

// From returns the origin of the edge
func (e Edge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e Edge) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge
func (e Edge) ReversedEdge() graph.Edge {
	return Edge{from: e.to, to: e.from}
}
