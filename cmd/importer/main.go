package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/passbi/passbi_planner/internal/dataset"
	"github.com/passbi/passbi_planner/internal/db"
)

func main() {
	// Command-line flags
	datasetPath := flag.String("dataset", "", "Path to a YAML network dataset (default: built-in Kochi network)")
	createSchema := flag.Bool("schema", true, "Create the location and edge tables if missing")
	dryRun := flag.Bool("dry-run", false, "Validate the dataset without writing to the database")

	flag.Parse()

	if *datasetPath != "" {
		if _, err := os.Stat(*datasetPath); os.IsNotExist(err) {
			log.Fatalf("Dataset file not found: %s", *datasetPath)
		}
	}

	log.Println("Starting network import...")
	startTime := time.Now()

	log.Println("Step 1/3: Loading dataset...")
	ds, err := dataset.LoadOrDefault(*datasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	log.Println("Step 2/3: Building network...")
	net, err := ds.Build()
	if err != nil {
		log.Fatalf("Dataset %q is invalid: %v", ds.Name, err)
	}

	if *dryRun {
		fmt.Printf("Dataset %q is valid: %d locations, %d edges\n", ds.Name, net.LocationCount(), net.EdgeCount())
		return
	}

	log.Println("Step 3/3: Writing network to database...")
	pool, err := db.GetDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *createSchema {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	}

	if err := db.StoreNetwork(ctx, pool, net); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import completed in %v: %d locations, %d edges", time.Since(startTime), net.LocationCount(), net.EdgeCount())
}
