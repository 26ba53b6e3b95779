package main

import (
	"context"
	"fmt"
	"log"

	"snaplist/internal/domain/attachment"
	"snaplist/internal/domain/todo"
	"snaplist/internal/infrastructure/objectstore"
	"snaplist/internal/infrastructure/postgres"
	httphandlers "snaplist/internal/interfaces/http"
	"snaplist/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Storage
	Store attachment.Store

	// DiskStore is non-nil when the disk backend is active; the router
	// mounts its root under the public uploads path.
	DiskStore *objectstore.Disk

	// Handlers
	TodoHandler   *httphandlers.TodoHandler
	UploadHandler *httphandlers.UploadHandler
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize the attachment store
	var store attachment.Store
	var diskStore *objectstore.Disk

	switch cfg.Storage.Backend {
	case config.StorageBackendDisk:
		diskStore, err = objectstore.NewDisk(cfg.Storage.Dir, cfg.Storage.PublicBase)
		if err != nil {
			db.Close()
			return nil, err
		}
		store = diskStore
		log.Printf("Using disk storage at %s", cfg.Storage.Dir)
	case config.StorageBackendGCS:
		gcs, err := objectstore.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			db.Close()
			return nil, err
		}
		store = gcs
		log.Printf("Using GCS storage bucket %s", cfg.Storage.Bucket)
	default:
		db.Close()
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	// Initialize repositories and services
	todoRepo := postgres.NewTodoRepository(db)
	todoService := todo.NewService(todoRepo, store)

	// Initialize handlers
	todoHandler := httphandlers.NewTodoHandler(todoService)
	uploadHandler := httphandlers.NewUploadHandler(store)

	return &Dependencies{
		DB:            db,
		Store:         store,
		DiskStore:     diskStore,
		TodoHandler:   todoHandler,
		UploadHandler: uploadHandler,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
	if c, ok := d.Store.(interface{ Close() error }); ok {
		c.Close()
	}
}
