// Package memory serves lookups straight from a normalized roster.Roster.
package memory

import (
	"context"

	"github.com/sakif/roster-lookup/internal/apperror"
	"github.com/sakif/roster-lookup/internal/model"
	"github.com/sakif/roster-lookup/internal/repository"
	"github.com/sakif/roster-lookup/internal/roster"
)

var _ repository.CandidateRepository = (*Store)(nil)

// Store is safe for concurrent use because the roster is never modified.
type Store struct {
	roster roster.Roster
}

// New wraps r. The roster must already be normalized.
func New(r roster.Roster) *Store {
	return &Store{roster: r}
}

func (s *Store) FindByNationalID(_ context.Context, nationalID string) ([]model.Candidate, error) {
	matches := roster.Match(s.roster, nationalID)
	if len(matches) == 0 {
		return nil, apperror.CandidateNotFound()
	}
	return matches, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	return s.roster.Len(), nil
}
