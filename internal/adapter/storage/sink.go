// Package storage persists encoded documents. Sinks pair an Encoder (PDF,
// XLSX) with a destination and implement pipeline.Sink.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/layout"
)

// Encoder serializes a document into a file format.
type Encoder interface {
	Extension() string
	ContentType() string
	Encode(w io.Writer, doc layout.Document) error
}

// FileSink writes documents into a local directory. Files are written to a
// temporary name and renamed, so readers never observe a partial export.
type FileSink struct {
	dir    string
	enc    Encoder
	logger *slog.Logger
}

// NewFileSink creates the directory if needed.
func NewFileSink(dir string, enc Encoder, logger *slog.Logger) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	return &FileSink{dir: abs, enc: enc, logger: logger}, nil
}

func (s *FileSink) Write(_ context.Context, doc layout.Document, filename string) (domain.ExportOutput, error) {
	name := filename + "." + s.enc.Extension()
	tmp, err := os.CreateTemp(s.dir, ".export-*")
	if err != nil {
		return domain.ExportOutput{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	cw := &countingWriter{w: tmp}
	if err := s.enc.Encode(cw, doc); err != nil {
		tmp.Close()
		return domain.ExportOutput{}, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.ExportOutput{}, fmt.Errorf("close %s: %w", name, err)
	}
	dest := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return domain.ExportOutput{}, fmt.Errorf("move %s into place: %w", name, err)
	}

	s.logger.Debug("export written", "path", dest, "bytes", cw.n)
	return domain.ExportOutput{Filename: name, Location: dest, Pages: doc.PageCount(), Bytes: cw.n}, nil
}

// ObjectWriter opens a writer for a new object. Closing the writer commits
// the object; cancelling ctx before Close aborts the upload.
type ObjectWriter interface {
	NewWriter(ctx context.Context, object, contentType string) io.WriteCloser
}

// Bucket adapts a GCS bucket handle to ObjectWriter.
type Bucket struct {
	handle *gcs.BucketHandle
}

func NewBucket(handle *gcs.BucketHandle) *Bucket {
	return &Bucket{handle: handle}
}

func (b *Bucket) NewWriter(ctx context.Context, object, contentType string) io.WriteCloser {
	w := b.handle.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

// GCSSink uploads documents to a bucket under prefix.
type GCSSink struct {
	bucket     ObjectWriter
	bucketName string
	prefix     string
	enc        Encoder
	logger     *slog.Logger
}

func NewGCSSink(bucket ObjectWriter, bucketName, prefix string, enc Encoder, logger *slog.Logger) *GCSSink {
	return &GCSSink{bucket: bucket, bucketName: bucketName, prefix: prefix, enc: enc, logger: logger}
}

func (s *GCSSink) Write(ctx context.Context, doc layout.Document, filename string) (domain.ExportOutput, error) {
	name := filename + "." + s.enc.Extension()
	object := name
	if s.prefix != "" {
		object = s.prefix + "/" + name
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.bucket.NewWriter(ctx, object, s.enc.ContentType())
	cw := &countingWriter{w: w}
	if err := s.enc.Encode(cw, doc); err != nil {
		cancel()
		_ = w.Close()
		return domain.ExportOutput{}, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return domain.ExportOutput{}, fmt.Errorf("upload %s: %w", object, err)
	}

	location := "gs://" + s.bucketName + "/" + object
	s.logger.Debug("export uploaded", "location", location, "bytes", cw.n)
	return domain.ExportOutput{Filename: name, Location: location, Pages: doc.PageCount(), Bytes: cw.n}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
