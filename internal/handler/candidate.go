package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CandidateHandler serves the JSON API.
type CandidateHandler struct {
	lookup CandidateLookup
	logger *slog.Logger
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(lookup CandidateLookup, logger *slog.Logger) *CandidateHandler {
	return &CandidateHandler{lookup: lookup, logger: logger}
}

// HandleGetByCPF returns every candidate registered under the CPF in the URL.
//
// HTTP: GET /api/candidates/{cpf}
//
// RESPONSE FORMAT (200):
//
//	[
//	  {"registrationNumber":"1001","nationalId":"123.456.789-01","fullName":"...",
//	   "examLocation":"...","room":"...","course":"..."}
//	]
//
// 404 with {"error":"not_found","message":"candidate not found"} otherwise.
func (h *CandidateHandler) HandleGetByCPF(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "cpf")

	results, err := h.lookup.Lookup(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status     string `json:"status"`
	Candidates int    `json:"candidates"`
}

// HandleHealth reports that the roster is loaded and how big it is.
//
// HTTP: GET /healthz
func (h *CandidateHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := h.lookup.Count(r.Context())
	if err != nil {
		h.logger.Error("health check failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Candidates: n})
}
