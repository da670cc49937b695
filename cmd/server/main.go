// Package main is the entry point for the roster lookup web server.
//
// main only reads configuration, builds the logger, loads the roster and
// starts the server. Everything else lives under internal/.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sakif/roster-lookup/internal/app"
	"github.com/sakif/roster-lookup/internal/config"
	"github.com/sakif/roster-lookup/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// === 3. LOAD THE ROSTER ===
	// No roster, no service: a failed download or a malformed sheet stops startup.
	a, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to load roster",
			slog.String("source", cfg.RosterURL),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer a.Close()

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.New(server.Config{Port: cfg.Port}, logger, a.Service, a.Registry)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}
}
