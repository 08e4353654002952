package planner

import (
	"context"
	"sync"

	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/insertion"
	"github.com/specialistvlad/evacgrid/internal/selector"
)

// InsertCommand is a request to add a node together with its distances to
// nodes that already exist.
type InsertCommand struct {
	ID        string
	Kind      area.Kind
	Distances []insertion.Distance
}

// Session owns a live graph and the rules applied to it.
type Session struct {
	mu        sync.RWMutex
	graph     *area.Graph
	policy    insertion.Policy
	selection selector.Mode
}

// Option configures a Session.
type Option func(*Session)

// WithPolicy overrides the insertion policy.
func WithPolicy(p insertion.Policy) Option {
	return func(s *Session) { s.policy = p }
}

// WithSelection overrides the highlight selection mode.
func WithSelection(m selector.Mode) Option {
	return func(s *Session) { s.selection = m }
}

// NewSession creates a session around g. A nil g starts from an empty area.
func NewSession(g *area.Graph, opts ...Option) *Session {
	if g == nil {
		g = area.New()
	}
	s := &Session{
		graph:     g,
		policy:    insertion.DefaultPolicy(),
		selection: selector.ByNodeCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InsertNode applies cmd through the session's insertion policy.
func (s *Session) InsertNode(ctx context.Context, cmd InsertCommand) (*insertion.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.policy.Insert(ctx, s.graph, cmd.ID, cmd.Kind, cmd.Distances)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Node inserted.", "node", cmd.ID, "kind", cmd.Kind.String(), "edges", len(out.Created))
	return out, nil
}

// AddEdge sets an explicit distance between two existing nodes.
func (s *Session) AddEdge(ctx context.Context, u, v string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.graph.AddEdge(u, v, weight); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Edge set.", "from", u, "to", v, "weight", weight)
	return nil
}

// Snapshot returns a private copy of the current area.
func (s *Session) Snapshot() *area.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Snapshot()
}

// Selection returns the highlight selection mode in use.
func (s *Session) Selection() selector.Mode {
	return s.selection
}
