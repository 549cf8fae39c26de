package graph

import (
	"math"

	"github.com/passbi/passbi_planner/internal/models"
)

const (
	metroSpeedKmh = 32.0
	busSpeedKmh   = 15.0
	autoSpeedKmh  = 20.0
	walkSpeedKmh  = 4.0

	// MetroFarePerHop is charged once per metro segment regardless of distance
	MetroFarePerHop = 5.0

	busBaseFare   = 10.0
	busFarePerKm  = 3.0
	autoBaseFare  = 20.0
	autoFarePerKm = 12.0
)

// EdgeCost derives travel time (minutes) and fare for a segment of the given
// mode and length. It is applied once when the network is built.
func EdgeCost(mode models.Mode, distanceKm float64) (timeMin, cost float64, err error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm <= 0 {
		return 0, 0, &InvalidEdgeError{Mode: mode, Reason: "distance must be positive"}
	}

	switch mode {
	case models.ModeMetro:
		return hours(distanceKm / metroSpeedKmh), MetroFarePerHop, nil
	case models.ModeBus:
		return hours(distanceKm / busSpeedKmh), busBaseFare + busFarePerKm*distanceKm, nil
	case models.ModeAuto:
		return hours(distanceKm / autoSpeedKmh), autoBaseFare + autoFarePerKm*distanceKm, nil
	case models.ModeWalk:
		return hours(distanceKm / walkSpeedKmh), 0, nil
	default:
		return 0, 0, &InvalidEdgeError{Mode: mode, Reason: "unknown mode"}
	}
}

func hours(h float64) float64 {
	return h * 60
}
