// Package config loads runtime settings from the environment.
//
// An optional .env file in the working directory is read first with
// godotenv; variables already set in the real environment win over it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/roster-lookup/internal/roster"
)

// DefaultRosterURL is the published CSV export of the exam roster sheet.
const DefaultRosterURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vT45YDXevL7xGBAE7x8CN-7B2cXWN8YtmSN98pEbzpkJhvEY234T0Jp6Ntm9hNZgN9U1Q2ZiiDZG7sS/pub?gid=136567823&single=true&output=csv"

// DefaultSQLitePath keeps the sqlite store entirely in RAM.
const DefaultSQLitePath = ":memory:"

// Store backends selectable with ROSTER_STORE.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds every setting of the server and the terminal client.
type Config struct {
	RosterURL    string
	Port         int
	FetchTimeout time.Duration
	Store        string
	SQLitePath   string
	LogLevel     slog.Level
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function. It is
// split out from Load so tests can feed a map instead of the process env.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		RosterURL:  get("ROSTER_URL", DefaultRosterURL),
		Store:      strings.ToLower(get("ROSTER_STORE", StoreMemory)),
		SQLitePath: get("SQLITE_PATH", DefaultSQLitePath),
	}

	portStr := get("PORT", "8080")
	port, err := strconv.Atoi(portStr) // Atoi = ASCII to Integer
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("config: invalid PORT %q", portStr)
	}
	cfg.Port = port

	timeoutStr := get("FETCH_TIMEOUT", roster.DefaultFetchTimeout.String())
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("config: invalid FETCH_TIMEOUT %q", timeoutStr)
	}
	cfg.FetchTimeout = timeout

	if cfg.Store != StoreMemory && cfg.Store != StoreSQLite {
		return nil, fmt.Errorf("config: invalid ROSTER_STORE %q (want %s or %s)", cfg.Store, StoreMemory, StoreSQLite)
	}

	levelStr := get("LOG_LEVEL", "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelStr)); err != nil {
		return nil, fmt.Errorf("config: invalid LOG_LEVEL %q", levelStr)
	}

	return cfg, nil
}
