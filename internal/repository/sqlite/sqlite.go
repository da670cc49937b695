// Package sqlite implements repository.CandidateRepository on top of SQLite.
//
// The default DSN is ":memory:", so the roster still lives only in process
// memory; SQLite just gives us an indexed table and ordered queries instead
// of a linear scan. A file path works too and is handy for inspecting a
// loaded roster with the sqlite3 shell.
//
// modernc.org/sqlite is a pure Go translation of SQLite, so no C toolchain
// is needed to build the binary.
//
// DATABASE/SQL OVERVIEW:
//   - sql.DB   : a connection pool (NOT a single connection!)
//   - sql.Tx   : a transaction, used for the bulk import
//   - sql.Rows : multiple result rows (must be closed!)
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the whole database in RAM.
const MemoryDSN = ":memory:"

// DB wraps a sql.DB connection pool and provides repository methods.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
}

// New opens the database at dsn and creates the candidates table.
//
// IN-MEMORY DATABASES AND THE POOL:
// Every new connection to ":memory:" gets its own empty database. The pool
// is therefore capped at a single connection for that DSN, otherwise a
// query could land on a connection that never saw the import.
func New(dsn string, logger *slog.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	if dsn == MemoryDSN {
		conn.SetMaxOpenConns(1)
	}

	// Ping forces a real connection so a bad path fails here, not on the first lookup.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if dsn != MemoryDSN {
		// WAL lets the HTTP handlers read while nothing else writes; it is
		// meaningless for an in-memory database.
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
		}
	}

	db := &DB{conn: conn, logger: logger}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE ... IF NOT EXISTS keeps it idempotent
// when a file-backed database is reused between runs.
//
// position records the row's index in the source table so results can be
// returned in table order.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS candidates (
			id                  TEXT PRIMARY KEY,
			position            INTEGER NOT NULL,
			registration_number INTEGER NOT NULL,
			national_id         TEXT NOT NULL,
			full_name           TEXT NOT NULL DEFAULT '',
			exam_location       TEXT NOT NULL DEFAULT '',
			room                TEXT NOT NULL DEFAULT '',
			course              TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_candidates_national_id ON candidates(national_id, position);
	`)
	if err != nil {
		return fmt.Errorf("creating candidates table: %w", err)
	}
	return nil
}
