package routing

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
)

// DefaultTimeout bounds a single strategy search
const DefaultTimeout = 2 * time.Second

// Router runs strategies against one immutable network
type Router struct {
	net     *graph.Network
	timeout time.Duration
}

// NewRouter creates a new router instance
func NewRouter(net *graph.Network) *Router {
	return &Router{net: net, timeout: DefaultTimeout}
}

// WithTimeout returns a copy of the router using a different per-strategy
// deadline. Zero disables the deadline.
func (r *Router) WithTimeout(d time.Duration) *Router {
	return &Router{net: r.net, timeout: d}
}

// Network returns the network the router searches
func (r *Router) Network() *graph.Network {
	return r.net
}

// FindRoutes computes one route per strategy, in the order given. With no
// strategies the canonical four are used. Each strategy runs in its own
// goroutine; a failing strategy only marks its own Route.
func (r *Router) FindRoutes(ctx context.Context, source, destination string, strategies []Strategy) ([]models.Route, error) {
	if err := r.net.Require(source); err != nil {
		return nil, err
	}
	if err := r.net.Require(destination); err != nil {
		return nil, err
	}

	if len(strategies) == 0 {
		strategies = GetAllStrategies()
	}

	routes := make([]models.Route, len(strategies))
	var wg sync.WaitGroup

	for i, strategy := range strategies {
		if strategy.Name == "" {
			strategy.Name = fmt.Sprintf("custom_%d", i+1)
		}

		wg.Add(1)
		go func(i int, strat Strategy) {
			defer wg.Done()
			routes[i] = r.findRoute(ctx, source, destination, strat)
		}(i, strategy)
	}

	wg.Wait()
	return routes, nil
}

// FindRoute computes the route of a single strategy
func (r *Router) FindRoute(ctx context.Context, source, destination string, strategy Strategy) (models.Route, error) {
	if err := r.net.Require(source); err != nil {
		return models.Route{}, err
	}
	if err := r.net.Require(destination); err != nil {
		return models.Route{}, err
	}

	route := r.findRoute(ctx, source, destination, strategy)
	return route, route.Err
}

func (r *Router) findRoute(ctx context.Context, source, destination string, strategy Strategy) models.Route {
	route := models.Route{Strategy: strategy.Name, Steps: []models.Step{}}

	if err := strategy.Validate(); err != nil {
		route.Err = err
		return route
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res, err := Solve(ctx, r.net, source, destination, CompositeWeight(strategy))
	if err != nil {
		log.Printf("Route computation failed for strategy %s: %v", strategy.Name, err)
		route.Err = err
		return route
	}

	if res.TimedOut {
		log.Printf("Warning: strategy %s timed out after settling %d locations", strategy.Name, res.Settled)
		route.TimedOut = true
		return route
	}

	if !res.Reached {
		return route
	}

	edges, err := res.PathTo(destination)
	if err != nil {
		log.Printf("Path reconstruction failed for strategy %s: %v", strategy.Name, err)
		route.Err = err
		return route
	}

	return buildRoute(strategy.Name, edges)
}

// buildRoute aggregates the true totals of a path
func buildRoute(strategy string, edges []models.Edge) models.Route {
	route := models.Route{
		Strategy: strategy,
		Found:    true,
		HopCount: len(edges),
		Steps:    make([]models.Step, 0, len(edges)),
		EdgeIDs:  make([]int, 0, len(edges)),
	}

	for _, e := range edges {
		route.TotalCost += e.Cost
		route.TotalTime += e.Time
		route.TotalDistance += e.Distance
		route.EdgeIDs = append(route.EdgeIDs, e.ID)
		route.Steps = append(route.Steps, models.Step{
			Mode:     e.Mode,
			From:     e.From,
			To:       e.To,
			Time:     e.Time,
			Cost:     e.Cost,
			Distance: e.Distance,
		})
	}

	return route
}
