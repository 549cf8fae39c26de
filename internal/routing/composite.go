package routing

import "github.com/passbi/passbi_planner/internal/models"

// Normalisation denominators shared by every strategy
const (
	CostNormalizer = 100.0 // rupees
	TimeNormalizer = 60.0  // minutes
	HopNormalizer  = 10.0  // hops
)

// WeightFunc maps an edge to its search weight
type WeightFunc func(e models.Edge) float64

// CompositeWeight binds the composite distance function to a strategy.
// The stops term is a flat per-edge penalty, so the stops weight favours
// paths with fewer edges.
func CompositeWeight(s Strategy) WeightFunc {
	wc, wt, ws := s.CostWeight, s.TimeWeight, s.StopsWeight
	return func(e models.Edge) float64 {
		return wc*(e.Cost/CostNormalizer) + wt*(e.Time/TimeNormalizer) + ws*(1/HopNormalizer)
	}
}
