package models

import "fmt"

// Mode represents the way a segment is travelled
type Mode string

const (
	ModeMetro Mode = "metro"
	ModeBus   Mode = "bus"
	ModeAuto  Mode = "auto"
	ModeWalk  Mode = "walk"
)

// AllModes lists every supported mode in display order
var AllModes = []Mode{ModeMetro, ModeBus, ModeAuto, ModeWalk}

// Valid reports whether m is one of the known modes
func (m Mode) Valid() bool {
	switch m {
	case ModeMetro, ModeBus, ModeAuto, ModeWalk:
		return true
	default:
		return false
	}
}

// ParseMode converts a raw mode tag into a Mode
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q", s)
	}
	return m, nil
}

// LocationKind classifies a place (metro_station, mall, hospital, ...)
type LocationKind string

const (
	KindMetroStation LocationKind = "metro_station"
)

// Location represents a physical place in the network
// The ID is the only field the routing engine relies on
type Location struct {
	ID   string       `json:"id" yaml:"id"`
	Kind LocationKind `json:"kind" yaml:"kind"`
	Zone string       `json:"zone,omitempty" yaml:"zone"`
	Lat  float64      `json:"lat" yaml:"lat"`
	Lon  float64      `json:"lon" yaml:"lon"`
}

// Edge represents a directed connection between two locations
type Edge struct {
	ID       int     // position in the network's edge list
	From     string
	To       string
	Mode     Mode
	Time     float64 // minutes
	Cost     float64 // rupees
	Distance float64 // kilometres
}

// Step represents one segment of a route
type Step struct {
	Mode     Mode    `json:"mode"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Time     float64 `json:"time_minutes"`
	Cost     float64 `json:"cost"`
	Distance float64 `json:"distance_km"`
}

// Route is the result of one strategy for one query
// Totals are the true sums of the traversed edges
type Route struct {
	Strategy      string   `json:"strategy"`
	AlsoOptimal   []string `json:"also_optimal_for,omitempty"`
	Found         bool     `json:"found"`
	TimedOut      bool     `json:"timed_out,omitempty"`
	TotalCost     float64  `json:"total_cost"`
	TotalTime     float64  `json:"total_time_minutes"`
	TotalDistance float64  `json:"total_distance_km"`
	HopCount      int      `json:"hop_count"`
	Steps         []Step   `json:"steps"`
	EdgeIDs       []int    `json:"edge_ids,omitempty"`
	Err           error    `json:"-"`
}

// SameEdges reports whether two found routes traverse the identical edge sequence
func (r *Route) SameEdges(other *Route) bool {
	if !r.Found || !other.Found || len(r.EdgeIDs) != len(other.EdgeIDs) {
		return false
	}
	for i := range r.EdgeIDs {
		if r.EdgeIDs[i] != other.EdgeIDs[i] {
			return false
		}
	}
	return true
}
