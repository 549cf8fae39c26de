package graph

import (
	"errors"
	"testing"

	"github.com/passbi/passbi_planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locs(ids ...string) []models.Location {
	out := make([]models.Location, len(ids))
	for i, id := range ids {
		out[i] = models.Location{ID: id}
	}
	return out
}

func TestNewNetwork(t *testing.T) {
	edges := []models.Edge{
		{From: "A", To: "B", Mode: models.ModeMetro, Time: 3, Cost: 5},
		{From: "A", To: "B", Mode: models.ModeWalk, Time: 20, Cost: 0},
		{From: "B", To: "C", Mode: models.ModeBus, Time: 4, Cost: 12},
	}

	n, err := NewNetwork(locs("C", "A", "B"), edges)
	require.NoError(t, err)

	t.Run("Parallel edges are kept", func(t *testing.T) {
		out := n.OutEdges("A")
		require.Len(t, out, 2)
		assert.Equal(t, models.ModeMetro, out[0].Mode)
		assert.Equal(t, models.ModeWalk, out[1].Mode)
	})

	t.Run("Edge ids follow input order", func(t *testing.T) {
		for i, e := range n.AllEdges() {
			assert.Equal(t, i, e.ID)
		}
		e, ok := n.Edge(2)
		require.True(t, ok)
		assert.Equal(t, "B", e.From)
		_, ok = n.Edge(3)
		assert.False(t, ok)
	})

	t.Run("Locations are sorted", func(t *testing.T) {
		var ids []string
		for _, l := range n.Locations() {
			ids = append(ids, l.ID)
		}
		assert.Equal(t, []string{"A", "B", "C"}, ids)
	})

	t.Run("Counts", func(t *testing.T) {
		assert.Equal(t, 3, n.LocationCount())
		assert.Equal(t, 3, n.EdgeCount())
		assert.Empty(t, n.OutEdges("C"))
	})

	t.Run("Require", func(t *testing.T) {
		assert.NoError(t, n.Require("A"))
		var ue *UnknownLocationError
		assert.True(t, errors.As(n.Require("Z"), &ue))
		assert.Equal(t, "Z", ue.ID)
	})
}

func TestNewNetworkRejectsInvalidEdges(t *testing.T) {
	tests := []struct {
		name string
		edge models.Edge
	}{
		{"Dangling origin", models.Edge{From: "X", To: "B", Mode: models.ModeBus, Time: 1}},
		{"Dangling destination", models.Edge{From: "A", To: "X", Mode: models.ModeBus, Time: 1}},
		{"Zero time", models.Edge{From: "A", To: "B", Mode: models.ModeBus, Time: 0}},
		{"Negative time", models.Edge{From: "A", To: "B", Mode: models.ModeBus, Time: -2}},
		{"Negative cost", models.Edge{From: "A", To: "B", Mode: models.ModeBus, Time: 1, Cost: -1}},
		{"Unknown mode", models.Edge{From: "A", To: "B", Mode: "ferry", Time: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetwork(locs("A", "B"), []models.Edge{tt.edge})
			var ie *InvalidEdgeError
			assert.True(t, errors.As(err, &ie))
		})
	}
}

func TestNewNetworkRejectsDuplicateLocation(t *testing.T) {
	_, err := NewNetwork(locs("A", "A"), nil)
	assert.Error(t, err)
}

func TestLocationsByKind(t *testing.T) {
	n, err := NewNetwork([]models.Location{
		{ID: "Mall", Kind: "mall"},
		{ID: "Kaloor Metro", Kind: models.KindMetroStation},
		{ID: "Aluva Metro", Kind: models.KindMetroStation},
	}, nil)
	require.NoError(t, err)

	stations := n.LocationsByKind(models.KindMetroStation)
	require.Len(t, stations, 2)
	assert.Equal(t, "Aluva Metro", stations[0].ID)
}
