package render

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/evacgrid/internal/pathfinder"
	"github.com/specialistvlad/evacgrid/internal/planner"
)

// ConsoleSink prints one line per destination followed by the highlighted
// route.
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a sink writing to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Publish implements Sink.
func (c *ConsoleSink) Publish(_ context.Context, plan *planner.Plan, _ *Request) error {
	for _, r := range plan.Results {
		var err error
		switch r.Outcome {
		case pathfinder.Reached:
			_, err = fmt.Fprintf(c.w, "Minimal Path from %s to %s: %v (distance %g)\n", plan.Start, r.Destination, r.Path, r.Weight)
		default:
			_, err = fmt.Fprintf(c.w, "Minimal Path from %s to %s: None (%s)\n", plan.Start, r.Destination, r.Outcome)
		}
		if err != nil {
			return fmt.Errorf("console sink: %w", err)
		}
	}

	var err error
	if plan.Highlight == nil {
		_, err = fmt.Fprintln(c.w, "Highlighted route: None")
	} else {
		_, err = fmt.Fprintf(c.w, "Highlighted route to %s: %v (by %s)\n", plan.Highlight.Destination, plan.Highlight.Path, plan.Selection)
	}
	if err != nil {
		return fmt.Errorf("console sink: %w", err)
	}
	return nil
}
