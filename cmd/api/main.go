package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/passbi/passbi_planner/internal/api"
	"github.com/passbi/passbi_planner/internal/cache"
	"github.com/passbi/passbi_planner/internal/config"
	"github.com/passbi/passbi_planner/internal/dataset"
	"github.com/passbi/passbi_planner/internal/db"
	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/middleware"
	"github.com/passbi/passbi_planner/internal/routing"
)

func main() {
	log.Println("Starting PassBi planner API server...")

	config.LoadEnvFiles()
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	net, err := loadNetwork(cfg)
	if err != nil {
		log.Fatalf("Failed to load network: %v", err)
	}
	log.Printf("✓ Network loaded (%d locations, %d edges)", net.LocationCount(), net.EdgeCount())

	router := routing.NewRouter(net).WithTimeout(cfg.RoutingTimeout)

	// Redis is optional: it backs the route cache and the rate limiter
	var store api.RouteStore
	var counter middleware.Counter
	if cfg.CacheEnabled {
		rdb, err := cache.GetClient()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer cache.Close()
		log.Println("✓ Redis connection established")

		store = cache.NewRouteCache(rdb, cfg.CacheTTL)
		counter = middleware.NewRedisCounter(rdb)
	}

	app := fiber.New(fiber.Config{
		AppName:      "PassBi Planner API",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	if counter != nil {
		app.Use("/v2", middleware.RateLimitMiddleware(counter, middleware.RateLimits{
			PerSecond: cfg.RateLimitPerSecond,
			PerDay:    cfg.RateLimitPerDay,
		}))
	}

	handler := api.NewHandler(router, store)
	if cfg.NetworkSource == config.SourcePostgres {
		defer db.Close()
		handler.WithDatabaseCheck(db.HealthCheck)
	}
	handler.Register(app)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error": "endpoint not found",
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Server listening on http://localhost%s", addr)
	log.Printf("📍 Route search: http://localhost%s/v2/route-search?from=Aluva+Metro&to=Lulu+Mall+Edapally", addr)
	log.Printf("❤️  Health check: http://localhost%s/health", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadNetwork builds the network from a dataset file or from PostgreSQL.
// The pool stays open for the /health database check.
func loadNetwork(cfg *config.Config) (*graph.Network, error) {
	if cfg.NetworkSource == config.SourcePostgres {
		pool, err := db.GetDB()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("✓ Database connection established")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return db.LoadNetwork(ctx, pool)
	}

	ds, err := dataset.LoadOrDefault(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	return ds.Build()
}

// customErrorHandler handles errors returned from handlers
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
