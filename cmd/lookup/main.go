// Command lookup is the terminal client: it loads the roster once and then
// answers one CPF per line typed on stdin.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/sakif/roster-lookup/internal/app"
	"github.com/sakif/roster-lookup/internal/cli"
	"github.com/sakif/roster-lookup/internal/config"
)

func main() {
	if err := run(); err != nil {
		color.Red("Erro: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to stderr so they never interleave with the result tables.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return cli.NewPrompt(a.Service, os.Stdin, os.Stdout).Run(ctx)
}
