// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler / CLI (presentation) → parses input, renders output
//	Service (business layer)     → decides what counts as a lookup, projects results
//	Repository (data layer)      → finds rows by canonical CPF
//
// LookupService takes a repository.CandidateRepository (interface), not a
// concrete store, so the same logic serves the HTTP page, the JSON API and
// the terminal client, and tests can inject a mock.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/roster-lookup/internal/apperror"
	"github.com/sakif/roster-lookup/internal/cpf"
	"github.com/sakif/roster-lookup/internal/metrics"
	"github.com/sakif/roster-lookup/internal/model"
	"github.com/sakif/roster-lookup/internal/repository"
	"github.com/sakif/roster-lookup/internal/roster"
)

// LookupService answers "who is the candidate with this CPF?".
type LookupService struct {
	repo    repository.CandidateRepository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewLookupService creates a LookupService. m may be nil when metrics are
// not collected (the terminal client, most tests).
func NewLookupService(repo repository.CandidateRepository, logger *slog.Logger, m *metrics.Metrics) *LookupService {
	return &LookupService{
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// Lookup returns the display projection of every candidate whose CPF
// equals query.
//
// QUERY RULES:
//   - surrounding whitespace is trimmed
//   - the query is NOT normalized: it must already be 11 digits
//   - empty, short, long or non-digit queries are a plain "not found" and
//     never reach the repository
//
// The returned error wraps apperror.ErrNotFound for every miss; any other
// error is a storage failure.
func (s *LookupService) Lookup(ctx context.Context, query string) ([]model.CandidateView, error) {
	start := time.Now()
	query = strings.TrimSpace(query)

	views, err := s.lookup(ctx, query)
	s.observe(start, err)

	switch {
	case err == nil:
		s.logger.Debug("candidate found", slog.Int("matches", len(views)))
	case errors.Is(err, apperror.ErrNotFound):
		// A miss is a normal answer, not a failure worth an error log.
		s.logger.Debug("candidate not found", slog.Int("query_length", len(query)))
	default:
		s.logger.Error("candidate lookup failed", slog.String("error", err.Error()))
	}

	return views, err
}

func (s *LookupService) lookup(ctx context.Context, query string) ([]model.CandidateView, error) {
	if !cpf.IsCanonical(query) {
		return nil, apperror.CandidateNotFound()
	}

	candidates, err := s.repo.FindByNationalID(ctx, query)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("looking up candidate: %w", err)
	}

	views, err := roster.ProjectAll(candidates)
	if err != nil {
		return nil, fmt.Errorf("projecting candidates: %w", err)
	}
	return views, nil
}

func (s *LookupService) observe(start time.Time, err error) {
	if s.metrics == nil {
		return
	}

	result := metrics.ResultFound
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		result = metrics.ResultNotFound
	case err != nil:
		result = metrics.ResultError
	}
	s.metrics.Lookups.WithLabelValues(result).Inc()
	s.metrics.LookupDuration.Observe(time.Since(start).Seconds())
}

// Count returns the number of candidates available for lookup.
func (s *LookupService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting candidates: %w", err)
	}
	return n, nil
}
