package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"github.com/sakif/roster-lookup/internal/apperror"
	"github.com/sakif/roster-lookup/internal/model"
	"github.com/sakif/roster-lookup/internal/repository"
	"github.com/sakif/roster-lookup/internal/roster"
)

// COMPILE-TIME INTERFACE CHECK:
// Fails the build if *DB stops satisfying repository.CandidateRepository.
var _ repository.CandidateRepository = (*DB)(nil)

// Import replaces the table contents with r, in one transaction.
//
// Each row gets an xid as primary key and its roster index as position.
// The roster must already be normalized: national_id is stored as given
// and compared with plain equality.
func (db *DB) Import(ctx context.Context, r roster.Roster) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: starting import: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM candidates`); err != nil {
		return fmt.Errorf("sqlite: clearing candidates: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO candidates
		   (id, position, registration_number, national_id, full_name, exam_location, room, course)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range r.Candidates() {
		if _, err := stmt.ExecContext(ctx,
			xid.New().String(),
			i,
			c.RegistrationNumber,
			c.NationalID,
			c.FullName,
			c.ExamLocation,
			c.Room,
			c.Course,
		); err != nil {
			return fmt.Errorf("sqlite: inserting candidate %d: %w", c.RegistrationNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing import: %w", err)
	}

	if db.logger != nil {
		db.logger.Debug("roster imported into sqlite", slog.Int("candidates", r.Len()))
	}
	return nil
}

// FindByNationalID returns all rows with the given canonical CPF, ordered
// as they appeared in the source table.
func (db *DB) FindByNationalID(ctx context.Context, nationalID string) ([]model.Candidate, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT registration_number, national_id, full_name, exam_location, room, course
		 FROM candidates
		 WHERE national_id = ?
		 ORDER BY position`,
		nationalID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: finding candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(
			&c.RegistrationNumber, &c.NationalID, &c.FullName,
			&c.ExamLocation, &c.Room, &c.Course,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating candidates: %w", err)
	}

	if len(candidates) == 0 {
		return nil, apperror.CandidateNotFound()
	}
	return candidates, nil
}

// Count returns the number of imported rows.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting candidates: %w", err)
	}
	return n, nil
}
