package pathfinder

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/constraint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuery(t *testing.T, dests ...string) []Result {
	t.Helper()
	g := area.Seed()
	ctx := context.Background()
	excl := constraint.Resolve(ctx, g, "RiskArea_1", constraint.AvoidSet(g, "RiskArea_1"))

	results, err := FindAll(ctx, g.Snapshot(), "RiskArea_1", dests, excl)
	require.NoError(t, err)
	return results
}

func TestFindAll_SeedScenario(t *testing.T) {
	results := seedQuery(t, "RescueCenter_1", "RescueCenter_2")

	want := []Result{
		{Destination: "RescueCenter_1", Outcome: Reached, Path: []string{"RiskArea_1", "Route_1", "RescueCenter_1"}, Weight: 15},
		{Destination: "RescueCenter_2", Outcome: Reached, Path: []string{"RiskArea_1", "Route_2", "RescueCenter_2"}, Weight: 20},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAll_UndeclaredDestination(t *testing.T) {
	results := seedQuery(t, "RescueCenter_3", "RescueCenter_1")
	require.Len(t, results, 2)

	assert.Equal(t, "RescueCenter_3", results[0].Destination)
	assert.Equal(t, Unreachable, results[0].Outcome)
	assert.True(t, results[0].Registered)
	assert.Nil(t, results[0].Path)

	assert.Equal(t, Reached, results[1].Outcome)
	assert.Equal(t, []string{"RiskArea_1", "Route_1", "RescueCenter_1"}, results[1].Path)
	assert.False(t, results[1].Registered)
}

func TestFind_DoesNotMutateSnapshot(t *testing.T) {
	g := area.Seed()
	excl := constraint.Resolve(context.Background(), g, "RiskArea_1", []string{"RiskArea_2"})

	_, err := FindAll(context.Background(), g, "RiskArea_1", []string{"Nowhere", "RescueCenter_2"}, excl)
	require.NoError(t, err)

	assert.False(t, g.HasNode("Nowhere"))
	assert.Len(t, g.Edges(), len(area.SeedEdges))
}

func TestFind_UnknownStart(t *testing.T) {
	g := area.Seed()
	_, err := FindAll(context.Background(), g, "Atlantis", []string{"RescueCenter_1"}, nil)
	require.ErrorIs(t, err, area.ErrUnknownNode)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestFind_AvoidedHazardBlocksRoute(t *testing.T) {
	// RiskArea_2 is only reachable through its own edges, which are excluded.
	g := area.Seed()
	excl := constraint.Resolve(context.Background(), g, "RiskArea_1", []string{"RiskArea_2"})

	results, err := FindAll(context.Background(), g, "RiskArea_1", []string{"RiskArea_2"}, excl)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Unreachable, results[0].Outcome)
}

func TestFind_PerRequestExclusions(t *testing.T) {
	g := area.Seed()
	blockRoute1 := constraint.ExclusionSet{}
	blockRoute1.Add("Route_1", "RescueCenter_1")

	results, err := Find(context.Background(), g, "RiskArea_1", []Request{
		{Destination: "RescueCenter_1", Exclude: blockRoute1},
		{Destination: "RescueCenter_2"},
		{Destination: "RescueCenter_1"},
	})
	require.NoError(t, err)

	require.Len(t, results, 2, "duplicate destination is evaluated once")
	assert.Equal(t, Unreachable, results[0].Outcome)
	assert.Equal(t, Reached, results[1].Outcome)
	assert.Equal(t, 20.0, results[1].Weight)
}

func TestFind_PrefersLowerWeightOverFewerHops(t *testing.T) {
	g := area.New()
	for _, id := range []string{"S", "A", "B", "T"} {
		require.NoError(t, g.AddNode(id, area.EvacuationRoute))
	}
	require.NoError(t, g.AddEdge("S", "T", 10))
	require.NoError(t, g.AddEdge("S", "A", 1))
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "T", 1))

	results, err := FindAll(context.Background(), g, "S", []string{"T"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "A", "B", "T"}, results[0].Path)
	assert.Equal(t, 3.0, results[0].Weight)
}

func TestFind_StartIsDestination(t *testing.T) {
	g := area.Seed()
	results, err := FindAll(context.Background(), g, "Route_1", []string{"Route_1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Route_1"}, results[0].Path)
	assert.Equal(t, 0.0, results[0].Weight)
}

func TestFind_CanceledContextReportsTimeout(t *testing.T) {
	g := area.Seed()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := FindAll(ctx, g, "RiskArea_1", []string{"RescueCenter_1", "RescueCenter_2"}, nil)
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, Timeout, r.Outcome, r.Destination)
	}
}

func TestFind_Idempotent(t *testing.T) {
	first := seedQuery(t, "RescueCenter_1", "RescueCenter_2", "RescueCenter_3")
	second := seedQuery(t, "RescueCenter_1", "RescueCenter_2", "RescueCenter_3")
	assert.Equal(t, first, second)
}

// Randomised graphs: a found path never passes through an avoided hazard zone.
func TestFind_NeverCrossesAvoidedNodes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []area.Kind{area.RiskArea, area.EvacuationRoute, area.RescueCenter}
	ctx := context.Background()

	for round := 0; round < 100; round++ {
		g := area.New()
		var ids []string
		for i := 0; i < 10; i++ {
			id := fmt.Sprintf("N%d", i)
			ids = append(ids, id)
			require.NoError(t, g.AddNode(id, kinds[rng.Intn(len(kinds))]))
		}
		for i := 0; i < 20; i++ {
			u, v := ids[rng.Intn(len(ids))], ids[rng.Intn(len(ids))]
			if u == v {
				continue
			}
			require.NoError(t, g.AddEdge(u, v, float64(rng.Intn(15))))
		}

		start := ids[rng.Intn(len(ids))]
		avoid := constraint.AvoidSet(g, start)
		avoided := make(map[string]bool)
		for _, a := range avoid {
			avoided[a] = true
		}

		excl := constraint.Resolve(ctx, g, start, avoid)
		results, err := FindAll(ctx, g.Snapshot(), start, ids, excl)
		require.NoError(t, err)

		for _, r := range results {
			for i, n := range r.Path {
				if i == 0 {
					continue
				}
				assert.False(t, avoided[n], "round %d: path %v crosses avoided %s", round, r.Path, n)
			}
		}
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "reached", Reached.String())
	assert.Equal(t, "unreachable", Unreachable.String())
	assert.Equal(t, "timeout", Timeout.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
