package routing

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildNetwork(t *testing.T, ids []string, edges []models.Edge) *graph.Network {
	t.Helper()
	locations := make([]models.Location, len(ids))
	for i, id := range ids {
		locations[i] = models.Location{ID: id}
	}
	n, err := graph.NewNetwork(locations, edges)
	require.NoError(t, err)
	return n
}

// randomNetwork builds a small directed multigraph with random modes and costs
func randomNetwork(t *testing.T, rng *rand.Rand, size, edgeCount int) *graph.Network {
	ids := make([]string, size)
	for i := range ids {
		ids[i] = fmt.Sprintf("L%d", i)
	}

	edges := make([]models.Edge, 0, edgeCount)
	for i := 0; i < edgeCount; i++ {
		from, to := rng.Intn(size), rng.Intn(size)
		if from == to {
			continue
		}
		edges = append(edges, models.Edge{
			From: ids[from],
			To:   ids[to],
			Mode: models.AllModes[rng.Intn(len(models.AllModes))],
			Time: 1 + rng.Float64()*30,
			Cost: rng.Float64() * 60,
		})
	}
	return buildNetwork(t, ids, edges)
}

// bruteForce returns the minimum weight over all simple paths from source to dest
func bruteForce(net *graph.Network, source, dest string, weight WeightFunc) float64 {
	best := math.Inf(1)
	visited := map[string]bool{source: true}

	var walk func(at string, dist float64)
	walk = func(at string, dist float64) {
		if at == dest {
			if dist < best {
				best = dist
			}
			return
		}
		for _, e := range net.OutEdges(at) {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			walk(e.To, dist+weight(e))
			visited[e.To] = false
		}
	}

	walk(source, 0)
	return best
}

func TestSolveMatchesBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		net := randomNetwork(t, rng, 6, 14)

		for _, strategy := range GetAllStrategies() {
			weight := CompositeWeight(strategy)

			for _, src := range net.Locations() {
				res, err := Solve(context.Background(), net, src.ID, "", weight)
				require.NoError(t, err)

				for _, dst := range net.Locations() {
					want := bruteForce(net, src.ID, dst.ID, weight)
					got, reached := res.Distance(dst.ID)

					if math.IsInf(want, 1) {
						assert.False(t, reached, "seed %d %s %s->%s", seed, strategy.Name, src.ID, dst.ID)
						continue
					}
					require.True(t, reached, "seed %d %s %s->%s", seed, strategy.Name, src.ID, dst.ID)
					assert.InDelta(t, want, got, 1e-9, "seed %d %s %s->%s", seed, strategy.Name, src.ID, dst.ID)

					path, err := res.PathTo(dst.ID)
					require.NoError(t, err)
					sum := 0.0
					for _, e := range path {
						sum += weight(e)
					}
					assert.InDelta(t, got, sum, 1e-9)
				}
			}
		}
	}
}

func TestSolveEarlyExitAgreesWithFullTree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	net := randomNetwork(t, rng, 8, 24)
	weight := CompositeWeight(Balanced)

	full, err := Solve(context.Background(), net, "L0", "", weight)
	require.NoError(t, err)

	for _, dst := range net.Locations() {
		res, err := Solve(context.Background(), net, "L0", dst.ID, weight)
		require.NoError(t, err)

		want, reachable := full.Distance(dst.ID)
		assert.Equal(t, reachable, res.Reached)
		if reachable {
			got, _ := res.Distance(dst.ID)
			assert.Equal(t, want, got)
		}
	}
}

func TestSolveTieBreakUsesDiscoveryOrder(t *testing.T) {
	// Zeta is discovered before Alpha; both reach T with identical weight.
	leg := func(from, to string) models.Edge {
		return models.Edge{From: from, To: to, Mode: models.ModeBus, Time: 10, Cost: 13}
	}
	net := buildNetwork(t, []string{"S", "Alpha", "Zeta", "T"}, []models.Edge{
		leg("S", "Zeta"),
		leg("S", "Alpha"),
		leg("Alpha", "T"),
		leg("Zeta", "T"),
	})

	res, err := Solve(context.Background(), net, "S", "T", CompositeWeight(Balanced))
	require.NoError(t, err)
	require.True(t, res.Reached)

	path, err := res.PathTo("T")
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, "Zeta", path[0].To)
}

func TestSolveUnknownLocation(t *testing.T) {
	net := buildNetwork(t, []string{"A"}, nil)

	_, err := Solve(context.Background(), net, "X", "A", CompositeWeight(Fastest))
	var ue *graph.UnknownLocationError
	assert.ErrorAs(t, err, &ue)

	_, err = Solve(context.Background(), net, "A", "X", CompositeWeight(Fastest))
	assert.ErrorAs(t, err, &ue)
}

func TestSolveUnreachable(t *testing.T) {
	net := buildNetwork(t, []string{"A", "B", "C"}, []models.Edge{
		{From: "A", To: "B", Mode: models.ModeWalk, Time: 5},
		{From: "C", To: "A", Mode: models.ModeWalk, Time: 5},
	})

	res, err := Solve(context.Background(), net, "A", "C", CompositeWeight(Fastest))
	require.NoError(t, err)
	assert.False(t, res.Reached)
	assert.False(t, res.TimedOut)
	assert.Equal(t, 2, res.Settled)

	_, err = res.PathTo("C")
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestSolveExpiredDeadline(t *testing.T) {
	net := buildNetwork(t, []string{"A", "B"}, []models.Edge{
		{From: "A", To: "B", Mode: models.ModeWalk, Time: 5},
	})

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	res, err := Solve(ctx, net, "A", "B", CompositeWeight(Fastest))
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.False(t, res.Reached)
}

func TestSolveCancelledContext(t *testing.T) {
	net := buildNetwork(t, []string{"A", "B"}, []models.Edge{
		{From: "A", To: "B", Mode: models.ModeWalk, Time: 5},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Solve(ctx, net, "A", "B", CompositeWeight(Fastest))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestSolveRejectsNegativeWeight(t *testing.T) {
	net := buildNetwork(t, []string{"A", "B"}, []models.Edge{
		{From: "A", To: "B", Mode: models.ModeWalk, Time: 5},
	})

	_, err := Solve(context.Background(), net, "A", "B", func(models.Edge) float64 { return -1 })
	assert.Error(t, err)
}
