package main

import (
	"log"
	"net/http"

	httphandlers "snaplist/internal/interfaces/http"
	"snaplist/internal/shared/config"
	"snaplist/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("/", httphandlers.HandleIndex)

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// API routes
	mux.HandleFunc("/api/todos/", deps.TodoHandler.HandleTodos)
	mux.HandleFunc("/api/todos/{id}", deps.TodoHandler.HandleTodoByID)
	mux.HandleFunc("/api/uploads", deps.UploadHandler.HandleUpload)

	// Attachments are public static files when the disk backend is active.
	// The GCS backend serves them from the bucket directly.
	if deps.DiskStore != nil {
		base := cfg.Storage.PublicBase
		mux.Handle(base, http.StripPrefix(base,
			http.FileServer(http.Dir(deps.DiskStore.Root()))))
	}

	// Apply global middleware
	handler := middleware.RequestID(middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux)))

	// Telemetry middleware only when enabled, to avoid overhead in dev
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
