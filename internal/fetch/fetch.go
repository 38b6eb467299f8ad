// Package fetch retrieves remote export documents. It is the only
// asynchronous boundary of an import: once the document body is available,
// parsing and store updates are synchronous.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher downloads export documents over HTTP. It does not retry: a failed
// fetch surfaces to the caller as a rejected import.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// New returns a fetcher with the given per-request timeout and response
// size cap.
func New(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch downloads the document at url. Cancellation is honored only at
// this boundary, via ctx.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch export: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read export body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("export exceeds %d bytes", f.maxBytes)
	}

	return data, nil
}
