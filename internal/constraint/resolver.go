// Package constraint turns an avoid-set of hazard zones into the set of edges
// a route query must not use.
package constraint

import (
	"context"
	"sort"

	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
)

// Pair is an unordered pair of node ids, stored with A <= B.
type Pair struct {
	A, B string
}

// NewPair normalises u and v into a Pair.
func NewPair(u, v string) Pair {
	if v < u {
		u, v = v, u
	}
	return Pair{A: u, B: v}
}

// ExclusionSet is a set of edges to suppress for a single query.
type ExclusionSet map[Pair]struct{}

// Add marks the edge between u and v as excluded.
func (s ExclusionSet) Add(u, v string) {
	s[NewPair(u, v)] = struct{}{}
}

// Contains reports whether the edge between u and v is excluded.
func (s ExclusionSet) Contains(u, v string) bool {
	_, ok := s[NewPair(u, v)]
	return ok
}

// Pairs returns the excluded edges in a stable order.
func (s ExclusionSet) Pairs() []Pair {
	out := make([]Pair, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Apply removes every excluded edge from g. g should be a private copy; the
// removal is idempotent.
func (s ExclusionSet) Apply(g *area.Graph) {
	for p := range s {
		g.RemoveEdge(p.A, p.B)
	}
}

// AvoidSet lists every hazard zone in g except start, in insertion order.
func AvoidSet(g *area.Graph, start string) []string {
	var out []string
	for _, id := range g.NodesOfKind(area.RiskArea) {
		if id != start {
			out = append(out, id)
		}
	}
	return out
}

// Resolve collects every edge incident to a node in avoid, reading the live
// graph at call time. The graph is not modified. The start node is never
// treated as something to avoid, and avoid ids missing from the graph add
// nothing.
func Resolve(ctx context.Context, live *area.Graph, start string, avoid []string) ExclusionSet {
	logger := ctxlog.FromContext(ctx)
	set := make(ExclusionSet)

	for _, id := range avoid {
		if id == start {
			continue
		}
		nbrs, err := live.Neighbors(id)
		if err != nil {
			logger.Debug("Avoid node not in graph, nothing to exclude.", "node", id)
			continue
		}
		for _, n := range nbrs {
			set.Add(id, n.ID)
		}
	}

	logger.Debug("Exclusion set resolved.", "start", start, "avoid", avoid, "excluded_edges", len(set))
	return set
}
