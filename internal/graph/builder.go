package graph

import (
	"fmt"

	"github.com/passbi/passbi_planner/internal/models"
)

// Builder collects locations and raw links and turns them into a Network
type Builder struct {
	locations []models.Location
	known     map[string]bool
	edges     []models.Edge
}

// NewBuilder creates a new network builder
func NewBuilder() *Builder {
	return &Builder{known: make(map[string]bool)}
}

// AddLocation registers a location. Ids must be unique.
func (b *Builder) AddLocation(loc models.Location) error {
	if loc.ID == "" {
		return fmt.Errorf("location with empty id")
	}
	if b.known[loc.ID] {
		return fmt.Errorf("duplicate location %q", loc.ID)
	}
	b.known[loc.ID] = true
	b.locations = append(b.locations, loc)
	return nil
}

// AddLink adds a directed edge whose time and cost are derived from the
// mode and distance by EdgeCost
func (b *Builder) AddLink(from, to string, mode models.Mode, distanceKm float64) error {
	timeMin, cost, err := EdgeCost(mode, distanceKm)
	if err != nil {
		if ie, ok := err.(*InvalidEdgeError); ok {
			ie.From, ie.To = from, to
		}
		return err
	}
	return b.AddEdge(models.Edge{
		From:     from,
		To:       to,
		Mode:     mode,
		Time:     timeMin,
		Cost:     cost,
		Distance: distanceKm,
	})
}

// AddBidirectionalLink adds the same link in both directions
func (b *Builder) AddBidirectionalLink(from, to string, mode models.Mode, distanceKm float64) error {
	if err := b.AddLink(from, to, mode, distanceKm); err != nil {
		return err
	}
	return b.AddLink(to, from, mode, distanceKm)
}

// AddEdge adds an edge with precomputed time and cost. Endpoints must be
// registered first.
func (b *Builder) AddEdge(e models.Edge) error {
	if !b.known[e.From] {
		return &InvalidEdgeError{From: e.From, To: e.To, Mode: e.Mode, Reason: "unknown origin location"}
	}
	if !b.known[e.To] {
		return &InvalidEdgeError{From: e.From, To: e.To, Mode: e.Mode, Reason: "unknown destination location"}
	}
	b.edges = append(b.edges, e)
	return nil
}

// EdgeCount returns the number of edges added so far
func (b *Builder) EdgeCount() int {
	return len(b.edges)
}

// Build validates everything collected so far and returns the Network
func (b *Builder) Build() (*Network, error) {
	return NewNetwork(b.locations, b.edges)
}
