package definition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrRemoteDisabled is returned by Read for http(s) locations when no client
// was configured.
var ErrRemoteDisabled = errors.New("definition: remote sources disabled")

// ReadOption configures Read.
type ReadOption func(*readOptions)

type readOptions struct {
	client  *http.Client
	timeout time.Duration
}

// WithHTTPClient enables http(s) locations using client.
func WithHTTPClient(client *http.Client) ReadOption {
	return func(o *readOptions) {
		o.client = client
	}
}

// WithHTTPFallback enables http(s) locations with a default client capped at
// timeout.
func WithHTTPFallback(timeout time.Duration) ReadOption {
	return func(o *readOptions) {
		if o.client == nil {
			o.client = &http.Client{}
		}
		o.timeout = timeout
	}
}

// Read fetches a definition or OpenAPI document from a file path or, when
// enabled, an http(s) URL.
func Read(ctx context.Context, location string, opts ...ReadOption) ([]byte, error) {
	var cfg readOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("definition: source location is required")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if cfg.client == nil {
			return nil, fmt.Errorf("%w: %s", ErrRemoteDisabled, location)
		}
		return readHTTP(ctx, cfg.client, location, cfg.timeout)
	}
	return readFile(ctx, location)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return data, nil
}

func readHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("definition: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
