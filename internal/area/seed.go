package area

// SeedEdges is the canonical starting topology: two hazard zones, two
// evacuation routes and two rescue centers.
var SeedEdges = []Edge{
	{From: "RiskArea_1", To: "Route_1", Weight: 5},
	{From: "RiskArea_1", To: "Route_2", Weight: 8},
	{From: "RiskArea_2", To: "Route_1", Weight: 7},
	{From: "RiskArea_2", To: "Route_2", Weight: 6},
	{From: "Route_1", To: "RescueCenter_1", Weight: 10},
	{From: "Route_2", To: "RescueCenter_2", Weight: 12},
}

// SeedNodes lists the seed nodes in the order they are inserted.
var SeedNodes = []Node{
	{ID: "RiskArea_1", Kind: RiskArea},
	{ID: "RiskArea_2", Kind: RiskArea},
	{ID: "Route_1", Kind: EvacuationRoute},
	{ID: "Route_2", Kind: EvacuationRoute},
	{ID: "RescueCenter_1", Kind: RescueCenter},
	{ID: "RescueCenter_2", Kind: RescueCenter},
}

// Seed returns a new graph holding the canonical topology.
func Seed() *Graph {
	g := New()
	for _, n := range SeedNodes {
		// Seed data is static and valid.
		_ = g.AddNode(n.ID, n.Kind)
	}
	for _, e := range SeedEdges {
		_ = g.AddEdge(e.From, e.To, e.Weight)
	}
	return g
}

// SeedStart is the hazard zone the default query starts from. Its
// destinations are the rescue centers present when the query runs.
const SeedStart = "RiskArea_1"
