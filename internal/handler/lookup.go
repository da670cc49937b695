// Package handler contains the HTTP handlers of the roster lookup service.
//
// HANDLER RESPONSIBILITIES:
//  1. Parse the incoming request (query string, URL params)
//  2. Call the lookup service
//  3. Write the response (HTML page or JSON)
//
// Handlers hold no business rules; deciding what matches lives in the
// service layer.
package handler

import (
	"context"

	"github.com/sakif/roster-lookup/internal/model"
)

// CandidateLookup is the slice of service.LookupService the handlers use.
type CandidateLookup interface {
	Lookup(ctx context.Context, query string) ([]model.CandidateView, error)
	Count(ctx context.Context) (int, error)
}
