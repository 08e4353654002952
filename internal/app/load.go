package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/insertion"
	"github.com/specialistvlad/evacgrid/internal/planner"
)

// applyModel inserts the declared nodes in order, then sets the explicit
// edges. A link may only name a node that is already present, either from the
// seed or from an earlier declaration.
func applyModel(ctx context.Context, s *planner.Session, m *config.Model) error {
	logger := ctxlog.FromContext(ctx)

	for _, n := range m.Nodes {
		distances := make([]insertion.Distance, 0, len(n.Links))
		for _, l := range n.Links {
			distances = append(distances, insertion.Distance{To: l.To, Weight: l.Distance})
		}
		cmd := planner.InsertCommand{ID: n.ID, Kind: n.Kind, Distances: distances}
		if _, err := s.InsertNode(ctx, cmd); err != nil {
			return fmt.Errorf("%s: node %q: %w", n.Source, n.ID, err)
		}
	}

	for _, e := range m.Edges {
		if err := s.AddEdge(ctx, e.From, e.To, e.Distance); err != nil {
			return fmt.Errorf("%s: edge %q %q: %w", e.Source, e.From, e.To, err)
		}
	}

	logger.Info("Area built.", "nodes", s.Snapshot().Len(), "declared_nodes", len(m.Nodes), "declared_edges", len(m.Edges))
	return nil
}
