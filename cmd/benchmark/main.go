package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/passbi/passbi_planner/internal/dataset"
	"github.com/passbi/passbi_planner/internal/routing"
)

type testCase struct {
	from       string
	to         string
	complexity string
}

var testCases = []testCase{
	{"Aluva Metro", "Pulinchodu Metro", "Simple"},
	{"Edapally Metro", "Palarivattom Metro", "Simple"},
	{"Lulu Mall Edapally", "M.G Road Metro", "Medium"},
	{"Medical Trust Hospital Edapally", "Oberon Mall", "Medium"},
	{"Aluva Town", "Fort Kochi", "Complex"},
	{"Kakkanad Infopark", "Marine Drive", "Complex"},
	{"CUSAT Campus", "Thripunithura Town", "Complex"},
	{"Aluva Metro", "Thripunithura Metro", "Long"},
	{"Lulu Mall Edapally", "Fort Kochi", "Long"},
}

type result struct {
	testCase
	latency    time.Duration
	allocBytes uint64
	routes     int
	err        error
}

func main() {
	datasetPath := flag.String("dataset", "", "Path to a YAML network dataset (default: built-in Kochi network)")
	iterations := flag.Int("n", 100, "Iterations per test case")
	flag.Parse()

	if *iterations < 1 {
		log.Fatalf("-n must be at least 1")
	}

	ds, err := dataset.LoadOrDefault(*datasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	net, err := ds.Build()
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}
	router := routing.NewRouter(net)

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("PERFORMANCE ANALYSIS - ROUTE PLANNER")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("\nRunning %d test cases, %d iterations each...\n\n", len(testCases), *iterations)

	results := make([]result, 0, len(testCases))
	for i, tc := range testCases {
		fmt.Printf("Test %d/%d: %s → %s (%s)\n", i+1, len(testCases), tc.from, tc.to, tc.complexity)
		res := runCase(router, tc, *iterations)
		if res.err != nil {
			fmt.Printf("  ✗ %v\n", res.err)
		}
		results = append(results, res)
	}

	report(results, net.LocationCount(), net.EdgeCount())
}

// runCase measures the mean latency and heap allocation of one query
func runCase(router *routing.Router, tc testCase, iterations int) result {
	res := result{testCase: tc}
	ctx := context.Background()

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	for i := 0; i < iterations; i++ {
		routes, err := router.FindRoutes(ctx, tc.from, tc.to, nil)
		if err != nil {
			res.err = err
			return res
		}
		res.routes = len(routing.Collapse(routes))
	}
	res.latency = time.Since(start) / time.Duration(iterations)

	runtime.ReadMemStats(&after)
	res.allocBytes = (after.TotalAlloc - before.TotalAlloc) / uint64(iterations)

	return res
}

func report(results []result, vertices, edges int) {
	var ok []result
	for _, r := range results {
		if r.err == nil {
			ok = append(ok, r)
		}
	}

	if len(ok) == 0 {
		fmt.Println("\n❌ No successful tests to analyze!")
		return
	}

	latencies := make([]float64, len(ok))
	allocs := make([]float64, len(ok))
	routes := make([]float64, len(ok))
	for i, r := range ok {
		latencies[i] = float64(r.latency.Microseconds())
		allocs[i] = float64(r.allocBytes) / 1024
		routes[i] = float64(r.routes)
	}

	lat := summarize(latencies)
	mem := summarize(allocs)

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("COMPUTATIONAL EFFICIENCY")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%-35s %.1f µs\n", "Average Computation Time", lat.mean)
	fmt.Printf("%-35s %.1f µs\n", "Maximum Computation Time", lat.max)
	fmt.Printf("%-35s %.1f µs\n", "Minimum Computation Time", lat.min)
	fmt.Printf("%-35s %.1f µs\n", "Standard Deviation", lat.stddev)
	fmt.Println()
	fmt.Printf("%-35s %.1f KiB\n", "Average Allocation per Query", mem.mean)
	fmt.Printf("%-35s %.1f KiB\n", "Maximum Allocation per Query", mem.max)
	fmt.Println()
	fmt.Printf("%-35s %.1f\n", "Average Distinct Routes", summarize(routes).mean)
	fmt.Printf("%-35s %d/%d\n", "Success Rate", len(ok), len(results))

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("COMPLEXITY BREAKDOWN")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%-15s %-10s %s\n", "Complexity", "Tests", "Avg Time")
	for _, complexity := range []string{"Simple", "Medium", "Complex", "Long"} {
		var times []float64
		for _, r := range ok {
			if r.complexity == complexity {
				times = append(times, float64(r.latency.Microseconds()))
			}
		}
		if len(times) > 0 {
			fmt.Printf("%-15s %-10d %.1f µs\n", complexity, len(times), summarize(times).mean)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("GRAPH")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Vertices (V): %d\n", vertices)
	fmt.Printf("Edges (E): %d\n", edges)
	fmt.Println("Per strategy: O((V + E) log V)")

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("DETAILED ROUTE ANALYSIS")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%-50s %-12s %-12s %s\n", "Route", "Time(µs)", "Alloc(KiB)", "Routes")
	for _, r := range ok {
		label := fmt.Sprintf("%s → %s", truncate(r.from, 20), truncate(r.to, 20))
		fmt.Printf("%-50s %-12d %-12.1f %d\n", label, r.latency.Microseconds(), float64(r.allocBytes)/1024, r.routes)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
