package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/layout"
	"github.com/couchcryptid/field-survey-reports/internal/observability"
)

// DefaultMaxBytes caps a single photo download.
const DefaultMaxBytes = 25 << 20

var errTooLarge = errors.New("image exceeds size limit")

// Fetcher loads photos for reports. It implements layout.ImageLoader:
// references are resolved, downloaded once with no retry, and normalized to
// JPEG or PNG.
type Fetcher struct {
	resolver   Resolver
	httpClient *http.Client
	maxDim     int
	maxBytes   int64
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewFetcher creates a Fetcher. maxDim bounds the long side of returned
// images in pixels; zero disables scaling.
func NewFetcher(resolver Resolver, timeout time.Duration, maxDim int, logger *slog.Logger, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		resolver: resolver,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxDim:   maxDim,
		maxBytes: DefaultMaxBytes,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load resolves and downloads the image behind ref.
func (f *Fetcher) Load(ctx context.Context, ref string) (layout.ImageData, error) {
	start := time.Now()
	data, err := f.fetch(ctx, ref)
	f.metrics.ImageFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		f.metrics.ImageFetches.WithLabelValues("error").Inc()
		return layout.ImageData{}, err
	}

	img, converted, err := normalize(data, f.maxDim)
	if err != nil {
		f.metrics.ImageFetches.WithLabelValues("error").Inc()
		return layout.ImageData{}, fmt.Errorf("image %q: %w", ref, err)
	}
	outcome := "success"
	if converted {
		outcome = "converted"
	}
	f.metrics.ImageFetches.WithLabelValues(outcome).Inc()
	f.logger.Debug("image loaded", "ref", ref, "bytes", len(img.Data), "format", img.Format, "converted", converted)
	return img, nil
}

func (f *Fetcher) fetch(ctx context.Context, ref string) ([]byte, error) {
	location, err := f.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location of %q: %w", ref, err)
	}

	if u.Scheme == "file" {
		file, err := os.Open(u.Path)
		if err != nil {
			return nil, fmt.Errorf("open image %q: %w", ref, err)
		}
		defer file.Close()
		return f.readLimited(file, ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %q: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image %q: status %d", ref, resp.StatusCode)
	}
	return f.readLimited(resp.Body, ref)
}

func (f *Fetcher) readLimited(r io.Reader, ref string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image %q: %w", ref, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("image %q: %w", ref, errTooLarge)
	}
	return data, nil
}
