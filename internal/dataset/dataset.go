// Package dataset loads a network description (locations, lines, links and
// auto-connection rules) and turns it into a graph.Network.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/passbi/passbi_planner/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed kochi.yaml
var kochiYAML []byte

// Dataset is the file representation of a network
type Dataset struct {
	Name      string            `yaml:"name"`
	Locations []models.Location `yaml:"locations"`
	Lines     []Line            `yaml:"lines"`
	Links     []Link            `yaml:"links"`
	Connect   *ConnectRules     `yaml:"connect"`
}

// Line is an ordered sequence of stations served by one mode.
// Consecutive stations are linked in both directions.
type Line struct {
	Name     string      `yaml:"name"`
	Mode     models.Mode `yaml:"mode"`
	Stations []string    `yaml:"stations"`
}

// Link is an explicit connection. Without time and cost they are derived from
// the mode and distance; a missing distance is taken from the coordinates.
type Link struct {
	From          string      `yaml:"from"`
	To            string      `yaml:"to"`
	Mode          models.Mode `yaml:"mode"`
	DistanceKm    float64     `yaml:"distance_km"`
	Time          *float64    `yaml:"time"`
	Cost          *float64    `yaml:"cost"`
	Bidirectional bool        `yaml:"bidirectional"`
}

// ConnectRules controls how non-station places are linked to the network
type ConnectRules struct {
	NearestStations int     `yaml:"nearest_stations"`
	WalkMaxKm       float64 `yaml:"walk_max_km"`
	AutoMaxKm       float64 `yaml:"auto_max_km"`
	BusMinKm        float64 `yaml:"bus_min_km"`
	BusMaxKm        float64 `yaml:"bus_max_km"`
	DirectAutoMaxKm float64 `yaml:"direct_auto_max_km"`
	DirectWalkMaxKm float64 `yaml:"direct_walk_max_km"`
}

// Validate rejects negative or NaN limits
func (r ConnectRules) Validate() error {
	if r.NearestStations < 0 {
		return fmt.Errorf("invalid connect rules: nearest_stations is %d, must not be negative", r.NearestStations)
	}

	limits := []struct {
		name  string
		value float64
	}{
		{"walk_max_km", r.WalkMaxKm},
		{"auto_max_km", r.AutoMaxKm},
		{"bus_min_km", r.BusMinKm},
		{"bus_max_km", r.BusMaxKm},
		{"direct_auto_max_km", r.DirectAutoMaxKm},
		{"direct_walk_max_km", r.DirectWalkMaxKm},
	}
	for _, l := range limits {
		if math.IsNaN(l.value) || l.value < 0 {
			return fmt.Errorf("invalid connect rules: %s is %v, must be a non-negative number", l.name, l.value)
		}
	}

	return nil
}

// Parse decodes a YAML dataset. Unknown fields are rejected.
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &ds, nil
}

// Load reads a YAML dataset from disk
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded Kochi dataset
func Default() *Dataset {
	ds, err := Parse(kochiYAML)
	if err != nil {
		panic(err)
	}
	return ds
}

// LoadOrDefault loads path, or the embedded dataset when path is empty
func LoadOrDefault(path string) (*Dataset, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
