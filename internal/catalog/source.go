package catalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"asanaflow/yoga-app/internal/config"
	"asanaflow/yoga-app/internal/domain"
)

// Source fetches the raw pose catalog from wherever it lives. The fetch
// happens once at startup; sources are not consulted again afterwards.
type Source interface {
	Fetch(ctx context.Context) ([]domain.PoseRecord, error)
}

// NewSource picks a source implementation from the catalog URL scheme:
// s3://bucket/key, http(s)://..., or a plain local file path.
func NewSource(cfg config.CatalogConfig, s3cfg config.S3Config) (Source, error) {
	switch {
	case strings.HasPrefix(cfg.URL, "s3://"):
		bucket, key, err := parseS3URL(cfg.URL)
		if err != nil {
			return nil, err
		}
		return NewS3Source(s3cfg, bucket, key)
	case strings.HasPrefix(cfg.URL, "http://"), strings.HasPrefix(cfg.URL, "https://"):
		return NewHTTPSource(cfg.URL, cfg.Timeout), nil
	default:
		return FileSource(cfg.URL), nil
	}
}

// HTTPSource fetches the catalog from an HTTP(S) endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTP catalog source with the given request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and decodes the pose catalog.
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.PoseRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching pose catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching pose catalog: unexpected status %d", resp.StatusCode)
	}
	return decodePoses(resp.Body)
}

// FileSource reads the catalog from a local file path.
type FileSource string

// Fetch opens and decodes the pose catalog file.
func (s FileSource) Fetch(ctx context.Context) ([]domain.PoseRecord, error) {
	f, err := os.Open(string(s))
	if err != nil {
		return nil, fmt.Errorf("opening pose catalog: %w", err)
	}
	defer f.Close()
	return decodePoses(f)
}

// parseS3URL splits s3://bucket/key into its bucket and object key.
func parseS3URL(url string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(url, "s3://")
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 catalog URL %q, want s3://bucket/key", url)
	}
	return bucket, key, nil
}
