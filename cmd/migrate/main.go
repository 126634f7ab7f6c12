package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"paisa/internal/infrastructure/postgres"
	"paisa/internal/shared/config"
)

func main() {
	schemaPath := flag.String("schema", "migrations/schema.sql", "path to the schema file")
	timeout := flag.Duration("timeout", time.Minute, "statement timeout for the whole run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("Failed to read schema %s: %v", *schemaPath, err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	log.Printf("Schema %s applied", *schemaPath)
}
