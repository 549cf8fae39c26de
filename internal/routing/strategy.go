package routing

import (
	"fmt"
	"math"
)

// weightTolerance bounds how far a weight vector may drift from summing to 1
const weightTolerance = 1e-6

// Strategy is a named weight vector over cost, time and stops
type Strategy struct {
	Name        string  `json:"name"`
	CostWeight  float64 `json:"cost"`
	TimeWeight  float64 `json:"time"`
	StopsWeight float64 `json:"stops"`
}

// Canonical strategies, in presentation order
var (
	Cheapest   = Strategy{Name: "cheapest", CostWeight: 0.7, TimeWeight: 0.2, StopsWeight: 0.1}
	Fastest    = Strategy{Name: "fastest", CostWeight: 0.1, TimeWeight: 0.7, StopsWeight: 0.2}
	Balanced   = Strategy{Name: "balanced", CostWeight: 0.4, TimeWeight: 0.4, StopsWeight: 0.2}
	Convenient = Strategy{Name: "convenient", CostWeight: 0.2, TimeWeight: 0.3, StopsWeight: 0.5}
)

// InvalidStrategyError reports a weight vector that cannot be used for search
type InvalidStrategyError struct {
	Name   string
	Reason string
}

func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("invalid strategy %q: %s", e.Name, e.Reason)
}

// NewStrategy builds and validates a caller-supplied strategy
func NewStrategy(name string, costWeight, timeWeight, stopsWeight float64) (Strategy, error) {
	s := Strategy{Name: name, CostWeight: costWeight, TimeWeight: timeWeight, StopsWeight: stopsWeight}
	if err := s.Validate(); err != nil {
		return Strategy{}, err
	}
	return s, nil
}

// Validate checks that every weight is non-negative and that they sum to 1.
// The time and stops weights may not both be zero: with a pure cost objective
// a free edge would get a zero search weight.
func (s Strategy) Validate() error {
	for _, w := range []float64{s.CostWeight, s.TimeWeight, s.StopsWeight} {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return &InvalidStrategyError{Name: s.Name, Reason: "weights must be finite and non-negative"}
		}
	}

	sum := s.CostWeight + s.TimeWeight + s.StopsWeight
	if math.Abs(sum-1) > weightTolerance {
		return &InvalidStrategyError{Name: s.Name, Reason: fmt.Sprintf("weights sum to %g, expected 1", sum)}
	}

	if s.TimeWeight+s.StopsWeight == 0 {
		return &InvalidStrategyError{Name: s.Name, Reason: "time and stops weights cannot both be zero"}
	}

	return nil
}

// GetStrategy returns a canonical strategy by name
func GetStrategy(name string) (Strategy, error) {
	for _, s := range GetAllStrategies() {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, &InvalidStrategyError{Name: name, Reason: "unknown strategy"}
}

// GetAllStrategies returns the canonical strategies in presentation order
func GetAllStrategies() []Strategy {
	return []Strategy{Cheapest, Fastest, Balanced, Convenient}
}
