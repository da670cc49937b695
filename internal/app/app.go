// Package app is the composition root shared by the HTTP server and the
// terminal client: it loads the roster once and builds the lookup service
// on top of the configured store.
//
// DEPENDENCY CHAIN:
//
//	config → roster.Load → roster.Normalize → store (memory | sqlite) → LookupService
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sakif/roster-lookup/internal/config"
	"github.com/sakif/roster-lookup/internal/metrics"
	"github.com/sakif/roster-lookup/internal/repository"
	"github.com/sakif/roster-lookup/internal/repository/memory"
	"github.com/sakif/roster-lookup/internal/repository/sqlite"
	"github.com/sakif/roster-lookup/internal/roster"
	"github.com/sakif/roster-lookup/internal/service"
)

// App owns everything built at startup.
type App struct {
	Service  *service.LookupService
	Registry *prometheus.Registry

	close func() error
}

// Build loads the roster from cfg.RosterURL and wires the service.
// Any failure here is fatal for the caller: there is nothing to serve
// without a roster.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	start := time.Now()

	raw, err := roster.Load(ctx, roster.NewSourceFetcher(cfg.FetchTimeout), cfg.RosterURL)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	r := roster.Normalize(raw)

	logger.Info("roster loaded",
		slog.Int("candidates", r.Len()),
		slog.Duration("duration", time.Since(start)),
	)

	repo, closeRepo, err := openStore(ctx, cfg, r, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	m.RosterCandidates.Set(float64(r.Len()))

	return &App{
		Service:  service.NewLookupService(repo, logger, m),
		Registry: reg,
		close:    closeRepo,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, r roster.Roster, logger *slog.Logger) (repository.CandidateRepository, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.New(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		if err := db.Import(ctx, r); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("importing roster: %w", err)
		}
		logger.Info("using sqlite store", slog.String("path", cfg.SQLitePath))
		return db, db.Close, nil
	default:
		logger.Info("using memory store")
		return memory.New(r), func() error { return nil }, nil
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.close()
}
