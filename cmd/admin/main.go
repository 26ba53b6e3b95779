package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"snaplist/internal/domain/attachment"
	"snaplist/internal/infrastructure/objectstore"
	"snaplist/internal/infrastructure/postgres"
	"snaplist/internal/shared/config"
)

const usage = `Snaplist Admin CLI - Management commands for the Snaplist API

Usage:
  admin <command> [options]

Commands:
  migrate        Create the todos table and indexes if they do not exist
  orphan-check   Report stored attachments no todo row references

Examples:
  # Apply the schema
  admin migrate

  # List orphaned attachments (reports only, never deletes)
  admin orphan-check

  # Run the check with a custom timeout
  admin orphan-check --timeout=2m`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "orphan-check":
		runOrphanCheck(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	timeout := fs.Duration("timeout", time.Minute, "Operation timeout")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("Schema is up to date")
}

// runOrphanCheck diffs stored objects against the keys referenced by todo
// rows. Orphans appear when a row delete succeeds but the follow-up storage
// cleanup does not; that ordering is deliberate, so this command only
// reports and leaves removal to an operator.
func runOrphanCheck(args []string) {
	fs := flag.NewFlagSet("orphan-check", flag.ExitOnError)
	timeout := fs.Duration("timeout", time.Minute, "Operation timeout")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	repo := postgres.NewTodoRepository(db)
	urls, err := repo.ImageURLs(ctx)
	if err != nil {
		log.Fatalf("Failed to list referenced attachments: %v", err)
	}

	referenced := make(map[string]bool, len(urls))
	for _, u := range urls {
		if key := attachment.KeyFromURL(u); key != "" {
			referenced[key] = true
		}
	}

	keys, err := store.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list stored objects: %v", err)
	}

	var orphans int
	for _, key := range keys {
		if !referenced[key] {
			fmt.Println(key)
			orphans++
		}
	}

	fmt.Printf("%d stored objects, %d referenced, %d orphaned\n", len(keys), len(referenced), orphans)
}

func newStore(ctx context.Context, cfg *config.Config) (attachment.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendDisk:
		return objectstore.NewDisk(cfg.Storage.Dir, cfg.Storage.PublicBase)
	case config.StorageBackendGCS:
		return objectstore.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
