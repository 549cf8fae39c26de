package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/passbi/passbi_planner/internal/graph"
	"github.com/passbi/passbi_planner/internal/models"
)

const batchSize = 1000

const schema = `
CREATE TABLE IF NOT EXISTS location (
	id   TEXT PRIMARY KEY,
	kind TEXT NOT NULL DEFAULT '',
	zone TEXT NOT NULL DEFAULT '',
	lat  DOUBLE PRECISION NOT NULL DEFAULT 0,
	lon  DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS edge (
	id            INTEGER PRIMARY KEY,
	from_location TEXT NOT NULL REFERENCES location(id) ON DELETE CASCADE,
	to_location   TEXT NOT NULL REFERENCES location(id) ON DELETE CASCADE,
	mode          TEXT NOT NULL CHECK (mode IN ('metro', 'bus', 'auto', 'walk')),
	time_minutes  DOUBLE PRECISION NOT NULL CHECK (time_minutes > 0),
	cost          DOUBLE PRECISION NOT NULL CHECK (cost >= 0),
	distance_km   DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS edge_from_idx ON edge (from_location);
`

// Querier is the read side of a pool or transaction
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// EnsureSchema creates the location and edge tables if they do not exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadNetwork reads every location and edge and builds the in-memory network.
// Edges keep their stored id order so results match the imported dataset.
func LoadNetwork(ctx context.Context, q Querier) (*graph.Network, error) {
	startTime := time.Now()
	log.Println("Loading network from database...")

	locRows, err := q.Query(ctx, `SELECT id, kind, zone, lat, lon FROM location ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	locations, err := pgx.CollectRows(locRows, scanLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to scan locations: %w", err)
	}
	log.Printf("  Loaded %d locations", len(locations))

	edgeRows, err := q.Query(ctx, `
		SELECT from_location, to_location, mode, time_minutes, cost, distance_km
		FROM edge
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load edges: %w", err)
	}
	edges, err := pgx.CollectRows(edgeRows, scanEdge)
	if err != nil {
		return nil, fmt.Errorf("failed to scan edges: %w", err)
	}
	log.Printf("  Loaded %d edges", len(edges))

	n, err := graph.NewNetwork(locations, edges)
	if err != nil {
		return nil, fmt.Errorf("stored network is invalid: %w", err)
	}

	log.Printf("Network loaded in %v (%d locations, %d edges)", time.Since(startTime), n.LocationCount(), n.EdgeCount())
	return n, nil
}

func scanLocation(row pgx.CollectableRow) (models.Location, error) {
	var loc models.Location
	var kind string
	if err := row.Scan(&loc.ID, &kind, &loc.Zone, &loc.Lat, &loc.Lon); err != nil {
		return loc, err
	}
	loc.Kind = models.LocationKind(kind)
	return loc, nil
}

func scanEdge(row pgx.CollectableRow) (models.Edge, error) {
	var e models.Edge
	var mode string
	if err := row.Scan(&e.From, &e.To, &mode, &e.Time, &e.Cost, &e.Distance); err != nil {
		return e, err
	}
	m, err := models.ParseMode(mode)
	if err != nil {
		return e, fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
	}
	e.Mode = m
	return e, nil
}

// StoreNetwork replaces the stored network with n inside one transaction
func StoreNetwork(ctx context.Context, pool *pgxpool.Pool, n *graph.Network) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE edge, location CASCADE"); err != nil {
		return fmt.Errorf("failed to clear network: %w", err)
	}

	for _, batch := range locationBatches(n.Locations(), batchSize) {
		if err := executeBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("failed to insert locations: %w", err)
		}
	}

	for _, batch := range edgeBatches(n.AllEdges(), batchSize) {
		if err := executeBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("failed to insert edges: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Stored %d locations and %d edges", n.LocationCount(), n.EdgeCount())
	return nil
}

const insertLocation = `INSERT INTO location (id, kind, zone, lat, lon) VALUES ($1, $2, $3, $4, $5)`

const insertEdge = `
	INSERT INTO edge (id, from_location, to_location, mode, time_minutes, cost, distance_km)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func locationBatches(locations []models.Location, size int) []*pgx.Batch {
	return queueBatches(locations, size, func(b *pgx.Batch, loc models.Location) {
		b.Queue(insertLocation, loc.ID, string(loc.Kind), loc.Zone, loc.Lat, loc.Lon)
	})
}

func edgeBatches(edges []models.Edge, size int) []*pgx.Batch {
	return queueBatches(edges, size, func(b *pgx.Batch, e models.Edge) {
		b.Queue(insertEdge, e.ID, e.From, e.To, string(e.Mode), e.Time, e.Cost, e.Distance)
	})
}

// queueBatches splits items into batches of at most size statements
func queueBatches[T any](items []T, size int, queue func(*pgx.Batch, T)) []*pgx.Batch {
	var batches []*pgx.Batch
	batch := &pgx.Batch{}
	for _, item := range items {
		queue(batch, item)
		if batch.Len() >= size {
			batches = append(batches, batch)
			batch = &pgx.Batch{}
		}
	}
	if batch.Len() > 0 {
		batches = append(batches, batch)
	}
	return batches
}

// executeBatch sends a batch and checks every queued statement
func executeBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("batch statement %d: %w", i, err)
		}
	}
	return results.Close()
}
