// Package blob resolves stored photo references to fetchable locations and
// loads them as report-ready images.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ErrUnresolvable is returned for references no location can be built for.
var ErrUnresolvable = errors.New("unresolvable blob reference")

// Resolver turns a stored image reference into a URL.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// isURL reports whether ref is already an absolute http(s) URL.
func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// cleanRef validates a relative reference and strips leading slashes.
func cleanRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrUnresolvable)
	}
	cleaned := path.Clean("/" + ref)
	if cleaned == "/" {
		return "", fmt.Errorf("%w: %q", ErrUnresolvable, ref)
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}

// PublicURLResolver joins references onto a public base URL, such as a
// public bucket or CDN. Absolute URLs pass through.
type PublicURLResolver struct {
	base *url.URL
}

// NewPublicURLResolver parses baseURL. An empty baseURL only lets absolute
// URLs through.
func NewPublicURLResolver(baseURL string) (*PublicURLResolver, error) {
	if baseURL == "" {
		return &PublicURLResolver{}, nil
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid public base URL %q", baseURL)
	}
	return &PublicURLResolver{base: u}, nil
}

func (r *PublicURLResolver) Resolve(_ context.Context, ref string) (string, error) {
	if isURL(ref) {
		return ref, nil
	}
	if r.base == nil {
		return "", fmt.Errorf("%w: %q has no base URL", ErrUnresolvable, ref)
	}
	rel, err := cleanRef(ref)
	if err != nil {
		return "", err
	}
	return r.base.ResolveReference(&url.URL{Path: rel}).String(), nil
}

// DirResolver maps references to files below a local directory.
type DirResolver struct {
	dir string
}

func NewDirResolver(dir string) *DirResolver {
	return &DirResolver{dir: dir}
}

func (r *DirResolver) Resolve(_ context.Context, ref string) (string, error) {
	if isURL(ref) {
		return ref, nil
	}
	rel, err := cleanRef(ref)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(filepath.Join(r.dir, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// URLSigner is the part of a GCS bucket handle the resolver needs.
type URLSigner interface {
	SignedURL(object string, opts *storage.SignedURLOptions) (string, error)
}

// GCSResolver issues V4 signed GET URLs for objects of a private bucket.
type GCSResolver struct {
	bucket URLSigner
	expiry time.Duration
}

// NewGCSResolver signs URLs valid for expiry. Pass a *storage.BucketHandle.
func NewGCSResolver(bucket URLSigner, expiry time.Duration) *GCSResolver {
	return &GCSResolver{bucket: bucket, expiry: expiry}
}

func (r *GCSResolver) Resolve(_ context.Context, ref string) (string, error) {
	if isURL(ref) {
		return ref, nil
	}
	if rest, ok := strings.CutPrefix(ref, "gs://"); ok {
		_, ref, _ = strings.Cut(rest, "/")
	}
	object, err := cleanRef(ref)
	if err != nil {
		return "", err
	}
	u, err := r.bucket.SignedURL(object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(r.expiry),
	})
	if err != nil {
		return "", fmt.Errorf("sign %q: %w", object, err)
	}
	return u, nil
}
