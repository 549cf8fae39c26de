package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/passbi/passbi_planner/internal/dataset"
	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
	"github.com/passbi/passbi_planner/internal/routing"
)

func main() {
	datasetPath := flag.String("dataset", "", "Path to a YAML network dataset (default: built-in Kochi network)")
	list := flag.Bool("list", false, "List locations and exit")
	kind := flag.String("kind", "", "Only list locations of this kind (e.g. metro_station, mall)")
	from := flag.String("from", "", "Source location id")
	to := flag.String("to", "", "Destination location id")
	strategyNames := flag.String("strategies", "", "Comma-separated strategies (default: all)")
	unique := flag.Bool("unique", false, "Merge strategies that found the same route")

	flag.Parse()

	ds, err := dataset.LoadOrDefault(*datasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	net, err := ds.Build()
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}

	if *list {
		printLocations(os.Stdout, net, models.LocationKind(*kind))
		return
	}

	if *from == "" || *to == "" {
		fmt.Println("Usage: planner --from=<location> --to=<location> [--strategies=cheapest,fastest] [--unique]")
		fmt.Println("       planner --list [--kind=metro_station]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	strategies, err := parseStrategies(*strategyNames)
	if err != nil {
		log.Fatalf("%v", err)
	}

	routes, err := routing.NewRouter(net).FindRoutes(context.Background(), *from, *to, strategies)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *unique {
		routes = routing.Collapse(routes)
	}

	fmt.Printf("Routes from %s to %s\n", *from, *to)
	for i, route := range routes {
		fmt.Println()
		printRoute(os.Stdout, i+1, route)
	}
}

func parseStrategies(raw string) ([]routing.Strategy, error) {
	var out []routing.Strategy
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, err := routing.GetStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func printLocations(w io.Writer, net *graph.Network, kind models.LocationKind) {
	locations := net.Locations()
	if kind != "" {
		locations = net.LocationsByKind(kind)
	}

	for _, loc := range locations {
		if loc.Zone != "" {
			fmt.Fprintf(w, "%-40s %-16s %s\n", loc.ID, loc.Kind, loc.Zone)
		} else {
			fmt.Fprintf(w, "%-40s %s\n", loc.ID, loc.Kind)
		}
	}
	fmt.Fprintf(w, "%d locations\n", len(locations))
}

// printRoute prints the steps of a route followed by totals recomputed from them
func printRoute(w io.Writer, index int, route models.Route) {
	title := strings.ToUpper(route.Strategy)
	if len(route.AlsoOptimal) > 0 {
		title += " (also " + strings.Join(route.AlsoOptimal, ", ") + ")"
	}
	fmt.Fprintf(w, "%d. %s\n", index, title)

	switch {
	case route.Err != nil:
		fmt.Fprintf(w, "   error: %v\n", route.Err)
		return
	case route.TimedOut:
		fmt.Fprintln(w, "   search timed out")
		return
	case !route.Found:
		fmt.Fprintln(w, "   no route found")
		return
	}

	fmt.Fprintf(w, "   ₹%.2f | %.1f min | %.2f km | %d hops\n",
		route.TotalCost, route.TotalTime, route.TotalDistance, route.HopCount)

	var cost, minutes float64
	for i, step := range route.Steps {
		fmt.Fprintf(w, "   %2d. %-5s %s → %s  (%.1f min, ₹%.2f, %.2f km)\n",
			i+1, step.Mode, step.From, step.To, step.Time, step.Cost, step.Distance)
		cost += step.Cost
		minutes += step.Time
	}

	fmt.Fprintf(w, "   check: ₹%.2f over %.1f min in %d steps\n", cost, minutes, len(route.Steps))
}
