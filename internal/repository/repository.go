// Package repository declares the read-only storage contract the lookup
// service depends on. Implementations live in the memory and sqlite
// sub-packages; both are filled once at startup from a normalized roster.
package repository

import (
	"context"

	"github.com/sakif/roster-lookup/internal/model"
)

// CandidateRepository finds candidates by canonical CPF.
//
// FindByNationalID returns every matching row in roster order, or an error
// wrapping apperror.ErrNotFound when there is none.
type CandidateRepository interface {
	FindByNationalID(ctx context.Context, nationalID string) ([]model.Candidate, error)
	Count(ctx context.Context) (int, error)
}
