package handler

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/roster-lookup/internal/apperror"
	"github.com/sakif/roster-lookup/internal/cpf"
	"github.com/sakif/roster-lookup/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler serves the lookup page.
// Templates are parsed once in NewPageHandler and reused by every request.
type PageHandler struct {
	templates *template.Template
	lookup    CandidateLookup
	logger    *slog.Logger
}

// pageData is what the "base" template receives.
type pageData struct {
	Title     string
	Query     string
	MaxLength int
	Searched  bool
	Headers   []string
	Results   []model.CandidateView
	NotFound  string
	Error     string
}

// NewPageHandler parses base.html and lookup.html together: base defines
// the page shell with a {{template "content" .}} slot that lookup fills.
func NewPageHandler(lookup CandidateLookup, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/lookup.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		lookup:    lookup,
		logger:    logger,
	}, nil
}

// HandlePage renders the search form and, when ?cpf= is present and not
// empty, the result of the lookup below it.
//
// HTTP: GET /            → form only
// HTTP: GET /?cpf=...    → form + result table or not-found message
//
// An empty cpf does not trigger a lookup at all.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("cpf"))

	data := pageData{
		Title:     "Busca do candidato por CPF",
		Query:     query,
		MaxLength: cpf.Length,
		Headers:   model.ColumnHeaders,
	}
	status := http.StatusOK

	if query != "" {
		data.Searched = true
		results, err := h.lookup.Lookup(r.Context(), query)
		switch {
		case err == nil:
			data.Results = results
		case errors.Is(err, apperror.ErrNotFound):
			data.NotFound = err.Error()
		default:
			status, _, data.Error = classify(err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		// Headers are gone already; all we can do is log.
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
	}
}
