// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package area

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Node is a single location in the evacuation area.
type Node struct {
	ID   string
	Kind Kind
}

// Neighbor is one adjacency entry: the node on the far side of an edge and
// the edge's distance.
type Neighbor struct {
	ID     string
	Weight float64
}

// Edge is an undirected connection. From is always the endpoint that was
// inserted into the graph first.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Graph is a thread-safe, in-memory store of nodes and undirected weighted
// edges. Each edge is held as two directed adjacency entries with the same
// weight.
type Graph struct {
	mu    sync.RWMutex
	order []string                      // node ids in insertion order
	index map[string]int                // node id -> position in order
	kinds map[string]Kind               // node id -> kind
	adj   map[string]map[string]float64 // node id -> neighbor id -> weight
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		kinds: make(map[string]Kind),
		adj:   make(map[string]map[string]float64),
	}
}

// AddNode inserts a node or overwrites the kind of an existing one. Re-adding
// a node keeps its original insertion position and its edges.
func (g *Graph) AddNode(id string, kind Kind) error {
	if id == "" {
		return ErrInvalidNodeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.kinds[id]; !exists {
		g.index[id] = len(g.order)
		g.order = append(g.order, id)
		g.adj[id] = make(map[string]float64)
	}
	g.kinds[id] = kind
	return nil
}

// AddEdge sets the distance between u and v, overwriting any previous value
// for the pair. Both nodes must already exist.
func (g *Graph) AddEdge(u, v string, weight float64) error {
	if u == v {
		return fmt.Errorf("%w: %q", ErrSelfLoop, u)
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %s-%s=%v", ErrInvalidWeight, u, v, weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.kinds[u]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, u)
	}
	if _, ok := g.kinds[v]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, v)
	}

	g.adj[u][v] = weight
	g.adj[v][u] = weight
	return nil
}

// RemoveEdge drops the edge between u and v in both directions. Removing an
// edge that does not exist, or whose endpoints do not exist, is a no-op.
func (g *Graph) RemoveEdge(u, v string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if nbrs, ok := g.adj[u]; ok {
		delete(nbrs, v)
	}
	if nbrs, ok := g.adj[v]; ok {
		delete(nbrs, u)
	}
}

// Neighbors returns the nodes adjacent to id, ordered by insertion position.
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}

	out := make([]Neighbor, 0, len(nbrs))
	for nid, w := range nbrs {
		out = append(out, Neighbor{ID: nid, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		return g.index[out[i].ID] < g.index[out[j].ID]
	})
	return out, nil
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.kinds[id]
	return ok
}

// Node looks up a single node.
func (g *Graph) Node(id string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	kind, ok := g.kinds[id]
	if !ok {
		return Node{}, false
	}
	return Node{ID: id, Kind: kind}, true
}

// Position returns the insertion position of id, or -1 if it is absent.
func (g *Graph) Position(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, Node{ID: id, Kind: g.kinds[id]})
	}
	return out
}

// NodesOfKind returns the ids of every node with the given kind, in
// insertion order.
func (g *Graph) NodesOfKind(kind Kind) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []string
	for _, id := range g.order {
		if g.kinds[id] == kind {
			out = append(out, id)
		}
	}
	return out
}

// Edges lists every undirected edge once, ordered by the insertion position
// of From and then To.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for i, u := range g.order {
		for v, w := range g.adj[u] {
			if g.index[v] > i {
				out = append(out, Edge{From: u, To: v, Weight: w})
			}
		}
	}
	sort.Slice(out, func(a, b int) bool {
		fa, fb := g.index[out[a].From], g.index[out[b].From]
		if fa != fb {
			return fa < fb
		}
		return g.index[out[a].To] < g.index[out[b].To]
	})
	return out
}

// Weight returns the distance between u and v, if they are adjacent.
func (g *Graph) Weight(u, v string) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	w, ok := g.adj[u][v]
	return w, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// Snapshot returns an independent deep copy. Changes to the copy never show
// up in g and vice versa.
func (g *Graph) Snapshot() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cp := &Graph{
		order: append([]string(nil), g.order...),
		index: make(map[string]int, len(g.index)),
		kinds: make(map[string]Kind, len(g.kinds)),
		adj:   make(map[string]map[string]float64, len(g.adj)),
	}
	for id, i := range g.index {
		cp.index[id] = i
	}
	for id, k := range g.kinds {
		cp.kinds[id] = k
	}
	for id, nbrs := range g.adj {
		m := make(map[string]float64, len(nbrs))
		for nid, w := range nbrs {
			m[nid] = w
		}
		cp.adj[id] = m
	}
	return cp
}
