// Package pathfinder computes constrained minimum-distance routes from one
// start node to each of several destinations.
//
// Every destination is searched on its own freshly filtered copy of the
// query snapshot, so exclusions never leak from one destination to another
// and a failure for one destination never affects the rest.
package pathfinder

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/constraint"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Outcome is the per-destination result class.
type Outcome int

const (
	Reached Outcome = iota
	Unreachable
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Reached:
		return "reached"
	case Unreachable:
		return "unreachable"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Request is a single destination together with the edges to suppress while
// searching for it.
type Request struct {
	Destination string
	Exclude     constraint.ExclusionSet
}

// Result is the answer for one destination. Path runs from start to
// destination inclusive and is nil unless Outcome is Reached.
type Result struct {
	Destination string
	Outcome     Outcome
	Path        []string
	Weight      float64
	// Registered is set when the destination was not part of the graph and
	// was added to the query copy as an isolated node.
	Registered bool
}

// Reachable reports whether a path was found.
func (r Result) Reachable() bool {
	return r.Outcome == Reached
}

// FindAll searches every destination with the same exclusion set.
func FindAll(ctx context.Context, snap *area.Graph, start string, dests []string, excl constraint.ExclusionSet) ([]Result, error) {
	reqs := make([]Request, 0, len(dests))
	for _, d := range dests {
		reqs = append(reqs, Request{Destination: d, Exclude: excl})
	}
	return Find(ctx, snap, start, reqs)
}

// Find searches each request independently and concurrently. snap itself is
// never modified. The only query-level failure is a start node that is not in
// snap, reported as area.ErrUnknownNode. Duplicate destinations are searched
// once; results follow the order of first appearance.
func Find(ctx context.Context, snap *area.Graph, start string, reqs []Request) ([]Result, error) {
	ctx, logger := ctxlog.With(ctx, "start", start)

	if !snap.HasNode(start) {
		return nil, fmt.Errorf("route query start: %w: %q", area.ErrUnknownNode, start)
	}

	// Undeclared destinations are registered on a private copy before any
	// search starts, so every search sees the same node set.
	base := snap.Snapshot()
	results := make([]Result, 0, len(reqs))
	unique := make([]Request, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))

	for _, req := range reqs {
		dest := req.Destination
		if seen[dest] {
			logger.Debug("Duplicate destination ignored.", "destination", dest)
			continue
		}
		seen[dest] = true

		res := Result{Destination: dest, Outcome: Unreachable}
		if !base.HasNode(dest) {
			if err := base.AddNode(dest, area.Unclassified); err != nil {
				logger.Warn("Destination could not be registered.", "destination", dest, "error", err)
			} else {
				res.Registered = true
				logger.Debug("Undeclared destination registered as isolated node.", "destination", dest)
			}
		}
		results = append(results, res)
		unique = append(unique, req)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range unique {
		if !base.HasNode(req.Destination) {
			continue
		}
		g.Go(func() error {
			results[i] = search(ctx, base, start, req, results[i])
			return nil
		})
	}
	_ = g.Wait() // searches report through results, never through errors

	return results, nil
}

// search runs one destination on a filtered copy of base.
func search(ctx context.Context, base *area.Graph, start string, req Request, res Result) Result {
	logger := ctxlog.FromContext(ctx)
	dest := req.Destination

	work := base.Snapshot()
	req.Exclude.Apply(work)

	path, weight, ok, err := shortestPath(ctx, work, start, dest)
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)):
		res.Outcome = Timeout
		logger.Warn("Route search stopped before completion.", "destination", dest, "error", err)
	case ok:
		res.Outcome = Reached
		res.Path = path
		res.Weight = weight
		logger.Debug("Route found.", "destination", dest, "path", path, "weight", weight)
	default:
		logger.Debug("Destination unreachable.", "destination", dest)
	}
	return res
}
