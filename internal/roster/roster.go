// Package roster holds the in-memory candidate roster and the pure
// operations over it: normalization and lookup by CPF.
//
// LIFECYCLE:
// A Roster is built once at startup (Load → Parse → Normalize) and never
// changes afterwards. It is passed explicitly to whoever needs it; there is
// no package-level roster.
package roster

import (
	"fmt"
	"strconv"

	"github.com/sakif/roster-lookup/internal/apperror"
	"github.com/sakif/roster-lookup/internal/cpf"
	"github.com/sakif/roster-lookup/internal/model"
)

// Roster is an ordered, read-only collection of candidates.
// The zero value is an empty roster.
type Roster struct {
	candidates []model.Candidate
}

// New builds a Roster from candidates, keeping their order.
// The slice is copied so later changes by the caller are not visible.
func New(candidates []model.Candidate) Roster {
	c := make([]model.Candidate, len(candidates))
	copy(c, candidates)
	return Roster{candidates: c}
}

// Len returns the number of candidates.
func (r Roster) Len() int {
	return len(r.candidates)
}

// Candidates returns a copy of the rows in table order.
func (r Roster) Candidates() []model.Candidate {
	c := make([]model.Candidate, len(r.candidates))
	copy(c, r.candidates)
	return c
}

// Normalize returns a new Roster whose NationalID fields are in canonical
// form (no '.' or '-'). The receiver is left untouched.
func Normalize(r Roster) Roster {
	out := make([]model.Candidate, len(r.candidates))
	for i, c := range r.candidates {
		c.NationalID = cpf.Normalize(c.NationalID)
		out[i] = c
	}
	return Roster{candidates: out}
}

// Match returns every candidate whose canonical NationalID equals query,
// in table order. A query that is not 11 digits can never match a canonical
// id, so it short-circuits to nil.
func Match(r Roster, query string) []model.Candidate {
	if !cpf.IsCanonical(query) {
		return nil
	}

	var matches []model.Candidate
	for _, c := range r.candidates {
		if c.NationalID == query {
			matches = append(matches, c)
		}
	}
	return matches
}

// FindByID looks up query against the roster and returns the display
// projection of all matches. Duplicate ids are not an error; every row
// sharing the id is returned in table order.
//
// When nothing matches the error is apperror.CandidateNotFound.
func FindByID(r Roster, query string) ([]model.CandidateView, error) {
	matches := Match(r, query)
	if len(matches) == 0 {
		return nil, apperror.CandidateNotFound()
	}
	return ProjectAll(matches)
}

// Project converts a matched candidate into its display form.
func Project(c model.Candidate) (model.CandidateView, error) {
	formatted, err := cpf.Format(c.NationalID)
	if err != nil {
		return model.CandidateView{}, fmt.Errorf("roster: formatting cpf of registration %d: %w", c.RegistrationNumber, err)
	}

	return model.CandidateView{
		RegistrationNumber: strconv.FormatInt(c.RegistrationNumber, 10),
		NationalID:         formatted,
		FullName:           c.FullName,
		ExamLocation:       c.ExamLocation,
		Room:               c.Room,
		Course:             c.Course,
	}, nil
}

// ProjectAll applies Project to every candidate, preserving order.
func ProjectAll(candidates []model.Candidate) ([]model.CandidateView, error) {
	views := make([]model.CandidateView, 0, len(candidates))
	for _, c := range candidates {
		v, err := Project(c)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
