package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/passbi/passbi_planner/internal/cache"
	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
	"github.com/passbi/passbi_planner/internal/routing"
)

// RouteStore caches computed routes by key
type RouteStore interface {
	GetRoute(ctx context.Context, key string) (*models.Route, error)
	SetRoute(ctx context.Context, key string, route *models.Route) error
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type statsReporter interface {
	Stats() map[string]interface{}
}

// Handler serves the planner HTTP endpoints
type Handler struct {
	router  *routing.Router
	store   RouteStore                      // nil disables caching
	dbCheck func(ctx context.Context) error // nil when the network did not come from a database
}

// NewHandler creates the HTTP handlers for a router
func NewHandler(router *routing.Router, store RouteStore) *Handler {
	return &Handler{router: router, store: store}
}

// WithDatabaseCheck reports the result of check under /health
func (h *Handler) WithDatabaseCheck(check func(ctx context.Context) error) *Handler {
	h.dbCheck = check
	return h
}

// Register mounts every endpoint on the app
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	v2 := app.Group("/v2")
	v2.Get("/locations", h.Locations)
	v2.Get("/route-search", h.RouteSearch)
	v2.Post("/route-search", h.RouteSearchCustom)
}

// RouteSearchResponse is the API response structure
type RouteSearchResponse struct {
	Routes []RouteResult `json:"routes"`
}

// RouteResult is one strategy's route plus its error, if any
type RouteResult struct {
	models.Route
	Error string `json:"error,omitempty"`
}

// RouteSearchRequest is the body of POST /v2/route-search
type RouteSearchRequest struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Strategies []routing.Strategy `json:"strategies"`
	Unique     bool               `json:"unique"`
}

// RouteSearch handles GET /v2/route-search with canonical strategies by name
func (h *Handler) RouteSearch(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")

	if from == "" || to == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "missing required parameters: from and to",
		})
	}

	strategies, err := parseStrategyNames(c.Query("strategies"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return h.search(c, from, to, strategies, c.QueryBool("unique"))
}

// RouteSearchCustom handles POST /v2/route-search with caller-supplied weights
func (h *Handler) RouteSearchCustom(c *fiber.Ctx) error {
	var req RouteSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid request body: %v", err),
		})
	}

	if req.From == "" || req.To == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "missing required fields: from and to",
		})
	}

	return h.search(c, req.From, req.To, req.Strategies, req.Unique)
}

func (h *Handler) search(c *fiber.Ctx, from, to string, strategies []routing.Strategy, unique bool) error {
	routes, err := h.findRoutes(c.UserContext(), from, to, strategies)
	if err != nil {
		var unknown *graph.UnknownLocationError
		if errors.As(err, &unknown) {
			return c.Status(404).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("Route search %s -> %s failed: %v", from, to, err)
		return c.Status(500).JSON(fiber.Map{
			"error": "route search failed",
		})
	}

	if unique {
		routes = routing.Collapse(routes)
	}

	results := make([]RouteResult, len(routes))
	for i, route := range routes {
		results[i] = RouteResult{Route: route}
		if route.Err != nil {
			results[i].Error = route.Err.Error()
		}
	}

	return c.JSON(RouteSearchResponse{Routes: results})
}

// findRoutes serves what it can from the store and computes the rest
func (h *Handler) findRoutes(ctx context.Context, from, to string, strategies []routing.Strategy) ([]models.Route, error) {
	if h.store == nil {
		return h.router.FindRoutes(ctx, from, to, strategies)
	}

	if len(strategies) == 0 {
		strategies = routing.GetAllStrategies()
	}
	named := make([]routing.Strategy, len(strategies))
	for i, s := range strategies {
		if s.Name == "" {
			s.Name = fmt.Sprintf("custom_%d", i+1)
		}
		named[i] = s
	}

	routes := make([]models.Route, len(named))
	var missing []routing.Strategy
	var missingIdx []int

	for i, s := range named {
		cached, err := h.store.GetRoute(ctx, cache.RouteKey(from, to, s))
		if err != nil {
			log.Printf("Failed to read cached route: %v", err)
		}
		if err == nil && cached != nil {
			routes[i] = *cached
			continue
		}
		missing = append(missing, s)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return routes, nil
	}

	computed, err := h.router.FindRoutes(ctx, from, to, missing)
	if err != nil {
		return nil, err
	}

	for j, route := range computed {
		routes[missingIdx[j]] = route
		if route.Err != nil || route.TimedOut {
			continue
		}
		if err := h.store.SetRoute(ctx, cache.RouteKey(from, to, missing[j]), &route); err != nil {
			log.Printf("Failed to cache route: %v", err)
		}
	}

	return routes, nil
}

// Locations handles GET /v2/locations, optionally filtered by kind
func (h *Handler) Locations(c *fiber.Ctx) error {
	net := h.router.Network()

	var locations []models.Location
	if kind := c.Query("kind"); kind != "" {
		locations = net.LocationsByKind(models.LocationKind(kind))
	} else {
		locations = net.Locations()
	}

	if locations == nil {
		locations = []models.Location{}
	}

	return c.JSON(fiber.Map{
		"locations": locations,
		"count":     len(locations),
	})
}

// Health handles the /health endpoint
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx := c.UserContext()
	net := h.router.Network()

	status := "healthy"

	dbStatus := "disabled"
	if h.dbCheck != nil {
		dbStatus = "ok"
		if err := h.dbCheck(ctx); err != nil {
			dbStatus = err.Error()
			status = "degraded"
		}
	}

	redisStatus := "disabled"
	if checker, ok := h.store.(healthChecker); ok {
		redisStatus = "ok"
		if err := checker.HealthCheck(ctx); err != nil {
			redisStatus = err.Error()
			status = "degraded"
		}
	}

	resp := fiber.Map{
		"status": status,
		"network": fiber.Map{
			"locations": net.LocationCount(),
			"edges":     net.EdgeCount(),
		},
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	}
	if reporter, ok := h.store.(statsReporter); ok {
		resp["cache"] = reporter.Stats()
	}

	return c.JSON(resp)
}

// parseStrategyNames parses "cheapest,fastest" into canonical strategies
func parseStrategyNames(raw string) ([]routing.Strategy, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var strategies []routing.Strategy
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, err := routing.GetStrategy(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}

	return strategies, nil
}
