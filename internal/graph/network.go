package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/passbi/passbi_planner/internal/models"
)

// Network holds the whole multi-modal graph in memory
// It is never modified after NewNetwork returns, so it can be shared by
// concurrent queries without locking.
type Network struct {
	locations map[string]models.Location // id -> Location
	ids       []string                   // sorted location ids
	adjacency map[string][]models.Edge   // from id -> outgoing edges in input order
	edges     []models.Edge              // every edge, indexed by Edge.ID
}

// NewNetwork validates the supplied locations and edges and builds the adjacency.
// Parallel edges between the same pair are kept as distinct edges.
func NewNetwork(locations []models.Location, edges []models.Edge) (*Network, error) {
	n := &Network{
		locations: make(map[string]models.Location, len(locations)),
		ids:       make([]string, 0, len(locations)),
		adjacency: make(map[string][]models.Edge, len(locations)),
		edges:     make([]models.Edge, 0, len(edges)),
	}

	for _, loc := range locations {
		if loc.ID == "" {
			return nil, fmt.Errorf("location with empty id")
		}
		if _, dup := n.locations[loc.ID]; dup {
			return nil, fmt.Errorf("duplicate location %q", loc.ID)
		}
		n.locations[loc.ID] = loc
		n.ids = append(n.ids, loc.ID)
	}
	sort.Strings(n.ids)

	for _, e := range edges {
		if err := n.validateEdge(e); err != nil {
			return nil, err
		}
		e.ID = len(n.edges)
		n.edges = append(n.edges, e)
		n.adjacency[e.From] = append(n.adjacency[e.From], e)
	}

	return n, nil
}

func (n *Network) validateEdge(e models.Edge) error {
	invalid := func(reason string) error {
		return &InvalidEdgeError{From: e.From, To: e.To, Mode: e.Mode, Reason: reason}
	}

	if _, ok := n.locations[e.From]; !ok {
		return invalid("unknown origin location")
	}
	if _, ok := n.locations[e.To]; !ok {
		return invalid("unknown destination location")
	}
	if !e.Mode.Valid() {
		return invalid("unknown mode")
	}
	if math.IsNaN(e.Time) || math.IsInf(e.Time, 0) || e.Time <= 0 {
		return invalid("time must be positive")
	}
	if math.IsNaN(e.Cost) || math.IsInf(e.Cost, 0) || e.Cost < 0 {
		return invalid("cost must not be negative")
	}
	if math.IsNaN(e.Distance) || math.IsInf(e.Distance, 0) || e.Distance < 0 {
		return invalid("distance must not be negative")
	}
	return nil
}

// HasLocation returns true if id is part of the network
func (n *Network) HasLocation(id string) bool {
	_, ok := n.locations[id]
	return ok
}

// Location returns a location by id
func (n *Network) Location(id string) (models.Location, bool) {
	loc, ok := n.locations[id]
	return loc, ok
}

// Require returns an UnknownLocationError if id is not part of the network
func (n *Network) Require(id string) error {
	if !n.HasLocation(id) {
		return &UnknownLocationError{ID: id}
	}
	return nil
}

// OutEdges returns the outgoing edges of a location in insertion order.
// The returned slice is shared and must not be modified.
func (n *Network) OutEdges(id string) []models.Edge {
	return n.adjacency[id]
}

// Edge returns an edge by id
func (n *Network) Edge(id int) (models.Edge, bool) {
	if id < 0 || id >= len(n.edges) {
		return models.Edge{}, false
	}
	return n.edges[id], true
}

// AllEdges returns a copy of every edge ordered by id
func (n *Network) AllEdges() []models.Edge {
	out := make([]models.Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

// Locations returns every location sorted by id
func (n *Network) Locations() []models.Location {
	out := make([]models.Location, 0, len(n.ids))
	for _, id := range n.ids {
		out = append(out, n.locations[id])
	}
	return out
}

// LocationsByKind returns the locations of one kind sorted by id
func (n *Network) LocationsByKind(kind models.LocationKind) []models.Location {
	var out []models.Location
	for _, id := range n.ids {
		if loc := n.locations[id]; loc.Kind == kind {
			out = append(out, loc)
		}
	}
	return out
}

// LocationCount returns the number of locations
func (n *Network) LocationCount() int {
	return len(n.ids)
}

// EdgeCount returns the number of edges
func (n *Network) EdgeCount() int {
	return len(n.edges)
}
