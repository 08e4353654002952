package render

import (
	"context"
	"fmt"

	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/hcl"
	"github.com/specialistvlad/evacgrid/internal/planner"
)

// HCLSink writes the drawn area, plus the query that produced the plan, to an
// area file that can be loaded again with --area.
type HCLSink struct {
	Path      string
	QueryName string
}

// NewHCLSink creates an exporter writing to path.
func NewHCLSink(path string) *HCLSink {
	return &HCLSink{Path: path, QueryName: "exported"}
}

// Publish implements Sink.
func (h *HCLSink) Publish(ctx context.Context, plan *planner.Plan, req *Request) error {
	g, err := req.Graph()
	if err != nil {
		return fmt.Errorf("hcl sink: %w", err)
	}

	dests := make([]string, 0, len(plan.Results))
	for _, r := range plan.Results {
		dests = append(dests, r.Destination)
	}
	q := &config.Query{Name: h.QueryName, Start: plan.Start, Destinations: dests}

	if err := hcl.WriteFile(h.Path, g, q); err != nil {
		return fmt.Errorf("hcl sink: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Area exported.", "path", h.Path, "nodes", len(req.Nodes), "edges", len(req.Edges))
	return nil
}
