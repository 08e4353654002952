package render

import (
	"context"
	"errors"

	"github.com/specialistvlad/evacgrid/internal/planner"
)

// Sink receives the outcome of a query.
type Sink interface {
	Publish(ctx context.Context, plan *planner.Plan, req *Request) error
}

// PublishAll hands the plan to every sink. A failing sink does not stop the
// others; all failures are joined into the returned error.
func PublishAll(ctx context.Context, sinks []Sink, plan *planner.Plan, req *Request) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Publish(ctx, plan, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
