// Package insertion decides which edges a newly inserted node receives.
//
// The rule is driven by the new node's kind. A hazard zone is never wired
// directly to another hazard zone; every other kind is wired to every node
// listed in its distance list.
package insertion

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
)

// Distance is one entry of an insertion command's distance list.
type Distance struct {
	To     string
	Weight float64
}

// Policy holds the switches that control insertion side effects.
type Policy struct {
	// RescueCenterBonusEdge writes the edge to the last listed node a second
	// time when a rescue center is inserted. Kept on by default to match the
	// behaviour of earlier releases.
	RescueCenterBonusEdge bool
}

// DefaultPolicy returns the policy used when nothing else is configured.
func DefaultPolicy() Policy {
	return Policy{RescueCenterBonusEdge: true}
}

// Skip records a distance entry that did not produce an edge.
type Skip struct {
	To     string
	Reason string
}

// Outcome describes what an insertion did to the graph.
type Outcome struct {
	Node    area.Node
	Created []area.Edge
	Skipped []Skip
	Bonus   *area.Edge
}

// Insert adds the node and its edges to g. Every referenced node is checked
// before anything is written, so a failed insertion leaves g unchanged.
func (p Policy) Insert(ctx context.Context, g *area.Graph, id string, kind area.Kind, distances []Distance) (*Outcome, error) {
	logger := ctxlog.FromContext(ctx).With("node", id, "kind", kind.String())
	logger.Debug("Node insertion started.", "distances", len(distances))

	if id == "" {
		return nil, area.ErrInvalidNodeID
	}
	for _, d := range distances {
		if d.To == id {
			continue
		}
		if !g.HasNode(d.To) {
			return nil, fmt.Errorf("cannot link %q: %w: %q", id, area.ErrUnknownNode, d.To)
		}
		if d.Weight < 0 || math.IsNaN(d.Weight) || math.IsInf(d.Weight, 0) {
			return nil, fmt.Errorf("cannot link %q to %q: %w: %v", id, d.To, area.ErrInvalidWeight, d.Weight)
		}
	}

	if err := g.AddNode(id, kind); err != nil {
		return nil, err
	}
	out := &Outcome{Node: area.Node{ID: id, Kind: kind}}

	var last *Distance
	for i := range distances {
		d := distances[i]
		if d.To == id {
			out.Skipped = append(out.Skipped, Skip{To: d.To, Reason: "self"})
			continue
		}
		last = &distances[i]

		if kind == area.RiskArea {
			if existing, _ := g.Node(d.To); existing.Kind == area.RiskArea {
				out.Skipped = append(out.Skipped, Skip{To: d.To, Reason: "risk area to risk area"})
				logger.Debug("Skipped risk-to-risk edge.", "to", d.To)
				continue
			}
		}

		if err := g.AddEdge(id, d.To, d.Weight); err != nil {
			return out, err
		}
		out.Created = append(out.Created, area.Edge{From: id, To: d.To, Weight: d.Weight})
	}

	if kind == area.RescueCenter && p.RescueCenterBonusEdge && last != nil {
		if err := g.AddEdge(id, last.To, last.Weight); err != nil {
			return out, err
		}
		out.Bonus = &area.Edge{From: id, To: last.To, Weight: last.Weight}
		logger.Debug("Rescue center bonus edge written.", "to", last.To, "weight", last.Weight)
	}

	logger.Debug("Node insertion finished.", "created", len(out.Created), "skipped", len(out.Skipped))
	return out, nil
}
