package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrUnexpectedStatus is returned when a page fetch does not answer 200.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Source yields the current rendered page markup.
type Source interface {
	Snapshot(ctx context.Context) (io.ReadCloser, error)
}

// Sink receives counts. It is the extractor's only outbound capability.
type Sink interface {
	Send(count int)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(count int)

// Send calls f(count).
func (f SinkFunc) Send(count int) { f(count) }

// FileSource reads a DOM snapshot saved to disk (for example by a
// browser extension or "Save page as").
type FileSource struct {
	Path string
}

func (s FileSource) Snapshot(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	return f, nil
}

// HTTPSource fetches the page over HTTP with a desktop user agent.
type HTTPSource struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

func (s HTTPSource) Snapshot(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	req.Header.Set("Accept", "text/html")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return resp.Body, nil
}

// SourceFor picks a Source for a path or http(s) URL.
func SourceFor(location, userAgent string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location, UserAgent: userAgent}
	}
	return FileSource{Path: location}
}
