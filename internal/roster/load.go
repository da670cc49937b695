package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds the download of the roster export.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher opens the raw bytes of a roster source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (io.ReadCloser, error)
}

// StatusError is returned when the remote source answers with a non-2xx code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("roster: fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

// SourceFetcher reads http(s) URLs over the network and anything else from
// the local filesystem. A "file://" prefix is accepted and stripped.
type SourceFetcher struct {
	client *http.Client
}

// NewSourceFetcher returns a fetcher whose HTTP requests give up after timeout.
// A zero timeout falls back to DefaultFetchTimeout.
func NewSourceFetcher(timeout time.Duration) *SourceFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &SourceFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *SourceFetcher) Fetch(ctx context.Context, source string) (io.ReadCloser, error) {
	if isRemote(source) {
		return f.fetchHTTP(ctx, source)
	}

	path := strings.TrimPrefix(source, "file://")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roster: opening %s: %w", path, err)
	}
	return file, nil
}

func (f *SourceFetcher) fetchHTTP(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("roster: building request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster: fetching %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load fetches source and parses it. The result is not normalized yet;
// callers pass it through Normalize before querying. No retries are made.
func Load(ctx context.Context, fetcher Fetcher, source string) (Roster, error) {
	body, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return Roster{}, err
	}
	defer body.Close()

	r, err := Parse(body)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: parsing %s: %w", source, err)
	}
	return r, nil
}
