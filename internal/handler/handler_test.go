package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/roster-lookup/internal/apperror"
	"github.com/sakif/roster-lookup/internal/handler"
	"github.com/sakif/roster-lookup/internal/model"
)

// MockLookup implements handler.CandidateLookup without any storage.
type MockLookup struct {
	Results  []model.CandidateView
	Err      error
	Total    int
	TotalErr error

	CapturedQueries []string
}

func (m *MockLookup) Lookup(_ context.Context, query string) ([]model.CandidateView, error) {
	m.CapturedQueries = append(m.CapturedQueries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

func (m *MockLookup) Count(_ context.Context) (int, error) {
	return m.Total, m.TotalErr
}

var anaView = model.CandidateView{
	RegistrationNumber: "1001",
	NationalID:         "123.456.789-01",
	FullName:           "Ana Souza",
	ExamLocation:       "Bloco A",
	Room:               "101",
	Course:             "Medicina",
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newAPIRouter(m *MockLookup) http.Handler {
	h := handler.NewCandidateHandler(m, testLogger())
	r := chi.NewRouter()
	r.Get("/api/candidates/{cpf}", h.HandleGetByCPF)
	r.Get("/healthz", h.HandleHealth)
	return r
}

func TestCandidateHandler_HandleGetByCPF(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := &MockLookup{Results: []model.CandidateView{anaView}}
		rr := httptest.NewRecorder()

		newAPIRouter(mock).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/candidates/12345678901", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var got []model.CandidateView
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, []model.CandidateView{anaView}, got)
		assert.Equal(t, []string{"12345678901"}, mock.CapturedQueries)
	})

	t.Run("not found", func(t *testing.T) {
		mock := &MockLookup{Err: apperror.CandidateNotFound()}
		rr := httptest.NewRecorder()

		newAPIRouter(mock).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/candidates/00000000000", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var body handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "not_found", body.Error)
		assert.Equal(t, "candidate not found", body.Message)
	})

	t.Run("internal error hides details", func(t *testing.T) {
		mock := &MockLookup{Err: errors.New("sqlite: database is locked")}
		rr := httptest.NewRecorder()

		newAPIRouter(mock).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/candidates/12345678901", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "sqlite")
	})
}

func TestCandidateHandler_HandleHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newAPIRouter(&MockLookup{Total: 3}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var body handler.HealthResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, handler.HealthResponse{Status: "ok", Candidates: 3}, body)
	})

	t.Run("count failure", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newAPIRouter(&MockLookup{TotalErr: errors.New("boom")}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestPageHandler_HandlePage(t *testing.T) {
	t.Run("empty query renders form without lookup", func(t *testing.T) {
		mock := &MockLookup{}
		h, err := handler.NewPageHandler(mock, testLogger())
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.HandlePage(rr, httptest.NewRequest(http.MethodGet, "/?cpf=", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), `maxlength="11"`)
		assert.NotContains(t, rr.Body.String(), `id="results"`)
		assert.Empty(t, mock.CapturedQueries)
	})

	t.Run("match renders table in column order", func(t *testing.T) {
		mock := &MockLookup{Results: []model.CandidateView{anaView}}
		h, err := handler.NewPageHandler(mock, testLogger())
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.HandlePage(rr, httptest.NewRequest(http.MethodGet, "/?cpf=12345678901", nil))

		body := rr.Body.String()
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, body, `id="results"`)
		assert.Contains(t, body, "<th>NUMEROINSCRICAO</th><th>CPF</th><th>NOME_CANDIDATO</th><th>LOCAL</th><th>SALA</th><th>CURSO</th>")
		assert.Contains(t, body, "<td>1001</td><td>123.456.789-01</td><td>Ana Souza</td>")
	})

	t.Run("miss renders not found message", func(t *testing.T) {
		mock := &MockLookup{Err: apperror.CandidateNotFound()}
		h, err := handler.NewPageHandler(mock, testLogger())
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.HandlePage(rr, httptest.NewRequest(http.MethodGet, "/?cpf=00000000000", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `<div class="error" id="not-found">candidate not found</div>`)
	})

	t.Run("query is escaped", func(t *testing.T) {
		mock := &MockLookup{Err: apperror.CandidateNotFound()}
		h, err := handler.NewPageHandler(mock, testLogger())
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.HandlePage(rr, httptest.NewRequest(http.MethodGet, `/?cpf=%22%3E%3Cscript%3E`, nil))

		assert.NotContains(t, rr.Body.String(), "<script>")
	})

	t.Run("storage failure renders 500", func(t *testing.T) {
		mock := &MockLookup{Err: errors.New("boom")}
		h, err := handler.NewPageHandler(mock, testLogger())
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.HandlePage(rr, httptest.NewRequest(http.MethodGet, "/?cpf=12345678901", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "An internal error occurred")
	})
}
