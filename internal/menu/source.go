package menu

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultMaxBytes caps how much of a menu resource is read
const DefaultMaxBytes int64 = 5 << 20

// Source retrieves the raw bytes of a menu resource. Implementations must
// read current content on every call and never serve a cached copy.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Location() string
}

// NewSource picks a Source for location: http(s) URLs are fetched over the
// network, file:// URLs and bare paths are read from disk.
func NewSource(location string, timeout time.Duration, maxBytes int64) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("menu source location is empty")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	u, err := url.Parse(location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return NewHTTPSource(location, timeout, maxBytes), nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Opaque
			}
			return NewFileSource(path, maxBytes), nil
		}
	}

	return NewFileSource(location, maxBytes), nil
}

// HTTPSource fetches a menu over HTTP with caching disabled
type HTTPSource struct {
	url      string
	client   *http.Client
	maxBytes int64
}

// NewHTTPSource creates a source for the given URL
func NewHTTPSource(rawURL string, timeout time.Duration, maxBytes int64) *HTTPSource {
	return &HTTPSource{
		url:      rawURL,
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// WithClient swaps the HTTP client, mainly for tests
func (s *HTTPSource) WithClient(client *http.Client) *HTTPSource {
	s.client = client
	return s
}

func (s *HTTPSource) Location() string {
	return s.url
}

// Fetch downloads the resource. Any transport failure or non-2xx status is
// reported as an error for the loader to classify as a fetch failure.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, max-age=0")
	req.Header.Set("Pragma", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return readLimited(resp.Body, s.maxBytes)
}

// FileSource reads a menu from the local filesystem
type FileSource struct {
	path     string
	maxBytes int64
}

// NewFileSource creates a source for the given path
func NewFileSource(path string, maxBytes int64) *FileSource {
	return &FileSource{path: path, maxBytes: maxBytes}
}

func (s *FileSource) Location() string {
	return s.path
}

// Path returns the filesystem path being read
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	return readLimited(f, s.maxBytes)
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read menu: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("menu exceeds %d bytes", maxBytes)
	}
	return data, nil
}
