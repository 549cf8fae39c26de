package dataset

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
)

// Build turns the dataset into an immutable network. Edges are added in file
// order: lines, explicit links, then place-to-station and place-to-place links.
func (ds *Dataset) Build() (*graph.Network, error) {
	startTime := time.Now()

	b := graph.NewBuilder()
	coords := make(map[string]models.Location, len(ds.Locations))
	for _, loc := range ds.Locations {
		if err := b.AddLocation(loc); err != nil {
			return nil, err
		}
		coords[loc.ID] = loc
	}

	for _, line := range ds.Lines {
		if err := addLine(b, coords, line); err != nil {
			return nil, fmt.Errorf("line %q: %w", line.Name, err)
		}
	}

	for _, link := range ds.Links {
		if err := addLink(b, coords, link); err != nil {
			return nil, err
		}
	}

	if ds.Connect != nil {
		if err := ds.Connect.Validate(); err != nil {
			return nil, err
		}
		if err := connectPlaces(b, ds.Locations, *ds.Connect); err != nil {
			return nil, err
		}
	}

	n, err := b.Build()
	if err != nil {
		return nil, err
	}

	log.Printf("Network %q built in %v (%d locations, %d edges)", ds.Name, time.Since(startTime), n.LocationCount(), n.EdgeCount())
	return n, nil
}

func addLine(b *graph.Builder, coords map[string]models.Location, line Line) error {
	for i := 0; i+1 < len(line.Stations); i++ {
		from, to := line.Stations[i], line.Stations[i+1]
		d, err := distanceBetween(coords, from, to)
		if err != nil {
			return err
		}
		if err := b.AddBidirectionalLink(from, to, line.Mode, d); err != nil {
			return err
		}
	}
	return nil
}

func addLink(b *graph.Builder, coords map[string]models.Location, link Link) error {
	d := link.DistanceKm
	if d == 0 {
		var err error
		if d, err = distanceBetween(coords, link.From, link.To); err != nil {
			return err
		}
	}

	add := func(from, to string) error {
		if link.Time == nil && link.Cost == nil {
			return b.AddLink(from, to, link.Mode, d)
		}
		if link.Time == nil || link.Cost == nil {
			return &graph.InvalidEdgeError{From: from, To: to, Mode: link.Mode, Reason: "time and cost must be given together"}
		}
		return b.AddEdge(models.Edge{From: from, To: to, Mode: link.Mode, Time: *link.Time, Cost: *link.Cost, Distance: d})
	}

	if err := add(link.From, link.To); err != nil {
		return err
	}
	if link.Bidirectional {
		return add(link.To, link.From)
	}
	return nil
}

type stationDistance struct {
	id string
	km float64
}

// connectPlaces links every non-station location to its nearest stations by
// walk, auto and bus, then links nearby places directly by auto and walk
func connectPlaces(b *graph.Builder, locations []models.Location, rules ConnectRules) error {
	var stations, places []models.Location
	for _, loc := range locations {
		if loc.Kind == models.KindMetroStation {
			stations = append(stations, loc)
		} else {
			places = append(places, loc)
		}
	}

	for _, place := range places {
		nearest := make([]stationDistance, 0, len(stations))
		for _, st := range stations {
			nearest = append(nearest, stationDistance{id: st.ID, km: HaversineKm(place.Lat, place.Lon, st.Lat, st.Lon)})
		}
		sort.SliceStable(nearest, func(i, j int) bool { return nearest[i].km < nearest[j].km })
		if rules.NearestStations < len(nearest) {
			nearest = nearest[:rules.NearestStations]
		}

		for _, st := range nearest {
			if st.km < rules.WalkMaxKm {
				if err := b.AddBidirectionalLink(place.ID, st.id, models.ModeWalk, st.km); err != nil {
					return err
				}
			}
			if st.km < rules.AutoMaxKm {
				if err := b.AddBidirectionalLink(place.ID, st.id, models.ModeAuto, st.km); err != nil {
					return err
				}
			}
			if st.km > rules.BusMinKm && st.km < rules.BusMaxKm {
				if err := b.AddBidirectionalLink(place.ID, st.id, models.ModeBus, st.km); err != nil {
					return err
				}
			}
		}
	}

	for i, a := range places {
		for _, c := range places[i+1:] {
			km := HaversineKm(a.Lat, a.Lon, c.Lat, c.Lon)
			if km < rules.DirectAutoMaxKm {
				if err := b.AddBidirectionalLink(a.ID, c.ID, models.ModeAuto, km); err != nil {
					return err
				}
			}
			if km < rules.DirectWalkMaxKm {
				if err := b.AddBidirectionalLink(a.ID, c.ID, models.ModeWalk, km); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func distanceBetween(coords map[string]models.Location, from, to string) (float64, error) {
	a, ok := coords[from]
	if !ok {
		return 0, &graph.InvalidEdgeError{From: from, To: to, Reason: "unknown origin location"}
	}
	c, ok := coords[to]
	if !ok {
		return 0, &graph.InvalidEdgeError{From: from, To: to, Reason: "unknown destination location"}
	}
	return HaversineKm(a.Lat, a.Lon, c.Lat, c.Lon), nil
}
