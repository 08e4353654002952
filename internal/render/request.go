package render

import (
	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/planner"
)

// Node is a single node in a render request.
type Node struct {
	ID   string    `json:"id"`
	Kind area.Kind `json:"kind"`
}

// Edge is a single undirected edge in a render request.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Request is the full picture to draw: every node with its kind, every edge
// with its weight, and the highlighted node sequence (empty if none).
type Request struct {
	Nodes     []Node   `json:"nodes"`
	Edges     []Edge   `json:"edges"`
	Highlight []string `json:"highlight"`
}

// NewRequest captures g and the highlighted path.
func NewRequest(g *area.Graph, highlight []string) *Request {
	req := &Request{
		Nodes:     []Node{},
		Edges:     []Edge{},
		Highlight: append([]string{}, highlight...),
	}
	for _, n := range g.Nodes() {
		req.Nodes = append(req.Nodes, Node{ID: n.ID, Kind: n.Kind})
	}
	for _, e := range g.Edges() {
		req.Edges = append(req.Edges, Edge{From: e.From, To: e.To, Weight: e.Weight})
	}
	return req
}

// ForPlan builds the request for plan against the session's current area.
// Nodes auto-registered while answering the query are not part of the live
// area and are therefore not drawn.
func ForPlan(s *planner.Session, plan *planner.Plan) *Request {
	return NewRequest(s.Snapshot(), plan.HighlightPath())
}

// Graph rebuilds an area from the request.
func (r *Request) Graph() (*area.Graph, error) {
	g := area.New()
	for _, n := range r.Nodes {
		if err := g.AddNode(n.ID, n.Kind); err != nil {
			return nil, err
		}
	}
	for _, e := range r.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}
