package planner

import (
	"context"

	"github.com/specialistvlad/evacgrid/internal/constraint"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/pathfinder"
	"github.com/specialistvlad/evacgrid/internal/selector"
)

// QueryCommand asks for routes from Start to each of Destinations.
type QueryCommand struct {
	Start        string
	Destinations []string
}

// Plan is the answer to a QueryCommand.
type Plan struct {
	Start     string
	Avoid     []string
	Results   []pathfinder.Result
	Highlight *pathfinder.Result
	Selection selector.Mode
}

// HighlightPath returns the highlighted node sequence, or nil if nothing was
// reachable.
func (p *Plan) HighlightPath() []string {
	if p == nil || p.Highlight == nil {
		return nil
	}
	return p.Highlight.Path
}

// Result looks up the outcome for a single destination.
func (p *Plan) Result(dest string) (pathfinder.Result, bool) {
	for _, r := range p.Results {
		if r.Destination == dest {
			return r, true
		}
	}
	return pathfinder.Result{}, false
}

// PlanRoutes answers cmd against the session's current area. An unknown start
// node fails the whole query with area.ErrUnknownNode; every other problem is
// reported per destination inside the Plan.
func PlanRoutes(ctx context.Context, s *Session, cmd QueryCommand) (*Plan, error) {
	ctx, logger := ctxlog.With(ctx, "start", cmd.Start)
	logger.Debug("Route planning started.", "destinations", cmd.Destinations)

	s.mu.RLock()
	avoid := constraint.AvoidSet(s.graph, cmd.Start)
	excl := constraint.Resolve(ctx, s.graph, cmd.Start, avoid)
	snap := s.graph.Snapshot()
	s.mu.RUnlock()

	results, err := pathfinder.FindAll(ctx, snap, cmd.Start, cmd.Destinations, excl)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Start:     cmd.Start,
		Avoid:     avoid,
		Results:   results,
		Selection: s.selection,
	}
	if best, ok := selector.Select(results, s.selection); ok {
		plan.Highlight = &best
		logger.Info("Route highlighted.", "destination", best.Destination, "path", best.Path, "weight", best.Weight)
	} else {
		logger.Warn("No destination is reachable.", "destinations", cmd.Destinations)
	}
	return plan, nil
}
