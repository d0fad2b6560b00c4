//go:build gcs

package blob

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/couchcryptid/field-survey-reports/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests sign URLs against a real bucket and require application default
// credentials plus GCS_SMOKE_BUCKET and GCS_SMOKE_OBJECT (an existing photo).
// Run with: go test -tags=gcs ./internal/adapter/blob/ -v -count=1

func smokeResolver(t *testing.T) (*GCSResolver, string) {
	t.Helper()
	bucket, object := os.Getenv("GCS_SMOKE_BUCKET"), os.Getenv("GCS_SMOKE_OBJECT")
	if bucket == "" || object == "" {
		t.Fatal("GCS_SMOKE_BUCKET and GCS_SMOKE_OBJECT must be set to run smoke tests")
	}
	client, err := storage.NewClient(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewGCSResolver(client.Bucket(bucket), 5*time.Minute), object
}

func TestSmoke_SignAndFetch(t *testing.T) {
	resolver, object := smokeResolver(t)
	f := NewFetcher(resolver, 20*time.Second, 1600,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting())

	img, err := f.Load(context.Background(), object)
	require.NoError(t, err)
	assert.NotEmpty(t, img.Data)
	assert.Contains(t, []string{"JPEG", "PNG"}, img.Format)
}

func TestSmoke_CachedResolver(t *testing.T) {
	resolver, object := smokeResolver(t)
	cached := NewCachedResolver(resolver, 10, time.Minute, observability.NewMetricsForTesting())

	u1, err := cached.Resolve(context.Background(), object)
	require.NoError(t, err)
	u2, err := cached.Resolve(context.Background(), object)
	require.NoError(t, err)
	assert.Equal(t, u1, u2, "second resolution should come from cache")
}
