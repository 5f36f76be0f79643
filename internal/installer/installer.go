// Package installer downloads the official Poetry installer script.
package installer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultURL is the official Poetry installer endpoint.
const DefaultURL = "https://install.python-poetry.org"

// maxScriptSize bounds the download; the real installer is well under 1 MiB.
const maxScriptSize = 8 << 20

// Fetcher retrieves an installer script.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher downloads installer scripts over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a Fetcher using client, or http.DefaultClient when nil.
// No timeout is imposed beyond what the client and ctx carry.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch GETs url and returns the body. Non-2xx statuses and empty bodies are
// errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("installer new request: %w", err)
	}
	req.Header.Set("Accept", "text/x-python, text/plain, */*")

	resp, err := f.client.Do(req) // #nosec G704 -- URL is the configured installer endpoint
	if err != nil {
		return nil, fmt.Errorf("installer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("installer: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptSize+1))
	if err != nil {
		return nil, fmt.Errorf("installer read: %w", err)
	}
	if len(body) > maxScriptSize {
		return nil, fmt.Errorf("installer: script exceeds %d bytes", maxScriptSize)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("installer: empty script from %s", url)
	}
	return body, nil
}
