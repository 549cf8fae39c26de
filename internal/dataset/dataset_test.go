package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
	"github.com/passbi/passbi_planner/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset(t *testing.T) {
	ds := Default()
	assert.Equal(t, "kochi", ds.Name)
	assert.Len(t, ds.Locations, 43)
	require.Len(t, ds.Lines, 1)
	assert.Len(t, ds.Lines[0].Stations, 23)

	n, err := ds.Build()
	require.NoError(t, err)
	assert.Equal(t, 43, n.LocationCount())
	assert.Len(t, n.LocationsByKind(models.KindMetroStation), 23)

	t.Run("Metro line is linked both ways with a flat fare", func(t *testing.T) {
		var forward, backward bool
		for _, e := range n.OutEdges("Edapally Metro") {
			if e.Mode != models.ModeMetro {
				continue
			}
			assert.Equal(t, graph.MetroFarePerHop, e.Cost)
			assert.Greater(t, e.Distance, 0.5)
			switch e.To {
			case "Changampuzha Park Metro":
				forward = true
			case "Pathadipalam Metro":
				backward = true
			}
		}
		assert.True(t, forward)
		assert.True(t, backward)
	})

	t.Run("Places reach stations", func(t *testing.T) {
		var modes []models.Mode
		for _, e := range n.OutEdges("Lulu Mall Edapally") {
			if e.To == "Edapally Metro" {
				modes = append(modes, e.Mode)
			}
		}
		assert.Contains(t, modes, models.ModeAuto)
	})
}

func TestDefaultDatasetRoutes(t *testing.T) {
	n, err := Default().Build()
	require.NoError(t, err)
	router := routing.NewRouter(n)

	pairs := [][2]string{
		{"Aluva Metro", "Thripunithura Metro"},
		{"Lulu Mall Edapally", "M.G Road Metro"},
		{"Aluva Town", "Fort Kochi"},
		{"CUSAT Campus", "Thripunithura Town"},
	}

	for _, p := range pairs {
		t.Run(p[0]+" to "+p[1], func(t *testing.T) {
			routes, err := router.FindRoutes(context.Background(), p[0], p[1], nil)
			require.NoError(t, err)
			require.Len(t, routes, 4)
			for _, r := range routes {
				require.True(t, r.Found, r.Strategy)
				assert.Equal(t, p[0], r.Steps[0].From)
				assert.Equal(t, p[1], r.Steps[len(r.Steps)-1].To)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("name: x\nstations: []\n"))
	assert.Error(t, err)
}

func TestBuildFromFile(t *testing.T) {
	data := `
name: tiny
locations:
  - {id: A, kind: metro_station, lat: 10.00, lon: 76.00}
  - {id: B, kind: metro_station, lat: 10.01, lon: 76.00}
  - {id: Mall, kind: mall, lat: 10.005, lon: 76.001}
lines:
  - name: Line 1
    mode: metro
    stations: [A, B]
links:
  - {from: A, to: Mall, mode: auto, time: 4, cost: 30, bidirectional: true}
  - {from: Mall, to: B, mode: walk, distance_km: 0.6}
`
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	ds, err := LoadOrDefault(path)
	require.NoError(t, err)

	n, err := ds.Build()
	require.NoError(t, err)
	assert.Equal(t, 5, n.EdgeCount())

	auto := n.OutEdges("Mall")[0]
	assert.Equal(t, models.ModeAuto, auto.Mode)
	assert.Equal(t, 4.0, auto.Time)
	assert.Equal(t, 30.0, auto.Cost)
	assert.InDelta(t, 0.567, auto.Distance, 0.005)

	walk := n.OutEdges("Mall")[1]
	assert.Equal(t, models.ModeWalk, walk.Mode)
	assert.InDelta(t, 9.0, walk.Time, 1e-9)
	assert.Zero(t, walk.Cost)
}

func TestBuildRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Dangling line station", "locations: [{id: A}]\nlines: [{name: L, mode: metro, stations: [A, X]}]\n"},
		{"Unknown mode", "locations: [{id: A, lat: 1}, {id: B}]\nlinks: [{from: A, to: B, mode: ferry}]\n"},
		{"Time without cost", "locations: [{id: A, lat: 1}, {id: B}]\nlinks: [{from: A, to: B, mode: bus, time: 3}]\n"},
		{"Zero time", "locations: [{id: A, lat: 1}, {id: B}]\nlinks: [{from: A, to: B, mode: bus, time: 0, cost: 2}]\n"},
		{"Co-located places", "locations: [{id: A, lat: 1}, {id: B, lat: 1}]\nlinks: [{from: A, to: B, mode: bus}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			_, err = ds.Build()
			var ie *graph.InvalidEdgeError
			assert.True(t, errors.As(err, &ie), "got %v", err)
		})
	}
}

func TestBuildRejectsBadConnectRules(t *testing.T) {
	tests := []struct {
		name  string
		rules string
		field string
	}{
		{"Negative station count", "nearest_stations: -1, walk_max_km: 1.5", "nearest_stations"},
		{"Negative walk limit", "nearest_stations: 3, walk_max_km: -1", "walk_max_km"},
		{"NaN auto limit", "nearest_stations: 3, auto_max_km: .nan", "auto_max_km"},
		{"Negative direct walk limit", "nearest_stations: 3, direct_walk_max_km: -0.5", "direct_walk_max_km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "locations: [{id: S, kind: metro_station, lat: 10}, {id: P, kind: mall, lat: 10.01}]\n" +
				"connect: {" + tt.rules + "}\n"
			ds, err := Parse([]byte(data))
			require.NoError(t, err)

			assert.NotPanics(t, func() {
				_, err = ds.Build()
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lon1     float64
		lat2     float64
		lon2     float64
		expected float64
		delta    float64
	}{
		{"Zero distance", 10.1082, 76.3520, 10.1082, 76.3520, 0, 1e-9},
		{"One degree of latitude", 10, 76, 11, 76, 111.19, 0.01},
		{"Aluva to Pulinchodu", 10.1082, 76.3520, 10.1012, 76.3445, 1.13, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2), tt.delta)
		})
	}
}
