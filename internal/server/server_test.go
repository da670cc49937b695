package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/roster-lookup/internal/handler"
	"github.com/sakif/roster-lookup/internal/metrics"
	"github.com/sakif/roster-lookup/internal/model"
	"github.com/sakif/roster-lookup/internal/repository/memory"
	"github.com/sakif/roster-lookup/internal/roster"
	"github.com/sakif/roster-lookup/internal/service"
)

// newTestServer wires the real stack (memory store → service → router)
// around a small roster and serves it with httptest.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	r, err := roster.Parse(strings.NewReader(
		"NUMEROINSCRICAO,CPF,NOME_CANDIDATO,LOCAL,SALA,CURSO\n" +
			"1001.0,123.456.789-01,Ana Souza,Bloco A,101,Medicina\n" +
			"1002,111.222.333-44,Bruno Lima,Bloco B,202,Direito\n" +
			"1003,111.222.333-44,Bruno Lima Filho,Bloco B,204,Direito\n"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	reg := prometheus.NewRegistry()
	svc := service.NewLookupService(memory.New(roster.Normalize(r)), logger, metrics.New(reg))

	srv, err := New(Config{Port: 0}, logger, svc, reg)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRoutes_APILookup(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/candidates/12345678901")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []model.CandidateView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "1001", got[0].RegistrationNumber)
	assert.Equal(t, "123.456.789-01", got[0].NationalID)
}

func TestRoutes_APIDuplicates(t *testing.T) {
	ts := newTestServer(t)

	_, body := get(t, ts.URL+"/api/candidates/11122233344")

	var got []model.CandidateView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Bruno Lima", got[0].FullName)
	assert.Equal(t, "Bruno Lima Filho", got[1].FullName)
}

func TestRoutes_APINotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/candidates/00000000000")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var e handler.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, "candidate not found", e.Message)
}

func TestRoutes_Page(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/?cpf=12345678901")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<td>123.456.789-01</td>")
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","candidates":3}`, body)

	get(t, ts.URL+"/api/candidates/00000000000")

	resp, body = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `roster_lookups_total{result="not_found"} 1`)
}
