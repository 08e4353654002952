package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/planner"
	"github.com/specialistvlad/evacgrid/internal/render"
)

// namedQuery is a query together with the name it is logged under.
type namedQuery struct {
	name string
	cmd  planner.QueryCommand
}

// Run answers every query selected by the configuration and publishes each
// plan to the sinks.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	queries := a.queries()
	if len(queries) == 0 {
		a.logger.Warn("No queries to run. Pass --start and --dest or add a query block to the area.")
		return nil
	}

	for _, q := range queries {
		qctx, logger := ctxlog.With(ctx, "query", q.name)
		logger.Info("Planning routes.", "start", q.cmd.Start, "destinations", q.cmd.Destinations)

		plan, err := planner.PlanRoutes(qctx, a.session, q.cmd)
		if err != nil {
			return fmt.Errorf("query %q failed: %w", q.name, err)
		}

		req := render.ForPlan(a.session, plan)
		if err := render.PublishAll(qctx, a.sinks, plan, req); err != nil {
			return fmt.Errorf("query %q: publishing failed: %w", q.name, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// queries picks, in order of preference: the ad-hoc query from the
// configuration, the queries saved in the area files, or the seed query.
func (a *App) queries() []namedQuery {
	if a.config.Start != "" {
		return []namedQuery{{
			name: "cli",
			cmd:  planner.QueryCommand{Start: a.config.Start, Destinations: a.config.Destinations},
		}}
	}

	if len(a.model.Queries) > 0 {
		out := make([]namedQuery, 0, len(a.model.Queries))
		for _, q := range a.model.Queries {
			out = append(out, namedQuery{
				name: q.Name,
				cmd:  planner.QueryCommand{Start: q.Start, Destinations: q.Destinations},
			})
		}
		return out
	}

	if a.config.Seed {
		// Every rescue center in the area is a destination, including the
		// ones inserted on top of the seed.
		dests := a.session.Snapshot().NodesOfKind(area.RescueCenter)
		return []namedQuery{{
			name: "seed",
			cmd:  planner.QueryCommand{Start: area.SeedStart, Destinations: dests},
		}}
	}
	return nil
}
