// Package app assembles the export service from configuration. Both the
// reportd service and the surveyctl CLI build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/couchcryptid/field-survey-reports/internal/adapter/blob"
	"github.com/couchcryptid/field-survey-reports/internal/adapter/kafka"
	"github.com/couchcryptid/field-survey-reports/internal/adapter/pdf"
	"github.com/couchcryptid/field-survey-reports/internal/adapter/postgres"
	"github.com/couchcryptid/field-survey-reports/internal/adapter/storage"
	"github.com/couchcryptid/field-survey-reports/internal/adapter/xlsx"
	"github.com/couchcryptid/field-survey-reports/internal/config"
	"github.com/couchcryptid/field-survey-reports/internal/observability"
	"github.com/couchcryptid/field-survey-reports/internal/pipeline"
	"github.com/couchcryptid/field-survey-reports/internal/report"
	"gorm.io/gorm"
)

const (
	creator = "field-survey-reports"
	// signedURLExpiry outlives signedURLCacheTTL so cached URLs stay valid.
	signedURLExpiry   = time.Hour
	signedURLCacheTTL = 50 * time.Minute
	outputPrefix      = "exports"
)

// App holds the wired components. Close releases them.
type App struct {
	DB       *gorm.DB
	Store    *postgres.Store
	Exporter *pipeline.Exporter

	logger  *slog.Logger
	gcs     *gcs.Client
	closers []func() error
}

// New opens the database, builds the image loader, composer, sinks and
// notifier, and returns the assembled exporter.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*App, error) {
	a := &App{logger: logger}
	fail := func(err error) (*App, error) {
		_ = a.Close()
		return nil, err
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	if cfg.DBAutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			return fail(err)
		}
	}
	a.Store = postgres.NewStore(db)

	resolver, ttl, err := a.resolver(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	cached := blob.NewCachedResolver(resolver, cfg.ImageCacheSize, ttl, metrics)
	fetcher := blob.NewFetcher(cached, cfg.ImageFetchTimeout, cfg.ImageMaxDimension, logger, metrics)

	composerOpts := []report.Option{report.WithLocation(cfg.ReportTimezone)}
	if cfg.ReportLogoRef != "" {
		composerOpts = append(composerOpts, report.WithLogo(cfg.ReportLogoRef))
	}
	composer := report.New(fetcher, logger, composerOpts...)

	sink, err := a.sink(ctx, cfg, pdf.NewEncoder(creator, time.Time{}))
	if err != nil {
		return fail(err)
	}
	listSink := sink
	if cfg.ListFormat == "xlsx" {
		if listSink, err = a.sink(ctx, cfg, xlsx.NewEncoder(time.Time{})); err != nil {
			return fail(err)
		}
	}

	opts := []pipeline.Option{
		pipeline.WithListSink(listSink),
		pipeline.WithLocation(cfg.ReportTimezone),
	}
	if cfg.KafkaEnabled {
		publisher := kafka.NewPublisher(cfg)
		a.closers = append(a.closers, publisher.Close)
		opts = append(opts, pipeline.WithNotifier(publisher))
		logger.Info("export events enabled", "topic", cfg.KafkaExportTopic)
	}

	a.Exporter = pipeline.New(a.Store, composer, sink, logger, metrics, opts...)
	logger.Info("exporter ready",
		"blob_backend", cfg.BlobBackend,
		"output_backend", cfg.OutputBackend,
		"list_format", cfg.ListFormat,
	)
	return a, nil
}

// Close releases every resource in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// CheckReadiness reports whether the database answers.
func (a *App) CheckReadiness(ctx context.Context) error {
	return a.Store.CheckReadiness(ctx)
}

func (a *App) storageClient(ctx context.Context) (*gcs.Client, error) {
	if a.gcs != nil {
		return a.gcs, nil
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	a.gcs = client
	a.closers = append(a.closers, client.Close)
	return client, nil
}

func (a *App) resolver(ctx context.Context, cfg *config.Config) (blob.Resolver, time.Duration, error) {
	switch cfg.BlobBackend {
	case config.BackendGCS:
		client, err := a.storageClient(ctx)
		if err != nil {
			return nil, 0, err
		}
		return blob.NewGCSResolver(client.Bucket(cfg.BlobBucket), signedURLExpiry), signedURLCacheTTL, nil
	case config.BackendLocal:
		return blob.NewDirResolver(cfg.BlobDir), 0, nil
	default:
		r, err := blob.NewPublicURLResolver(cfg.BlobPublicBaseURL)
		return r, 0, err
	}
}

func (a *App) sink(ctx context.Context, cfg *config.Config, enc storage.Encoder) (pipeline.Sink, error) {
	if cfg.OutputBackend == config.BackendGCS {
		client, err := a.storageClient(ctx)
		if err != nil {
			return nil, err
		}
		bucket := storage.NewBucket(client.Bucket(cfg.OutputBucket))
		return storage.NewGCSSink(bucket, cfg.OutputBucket, outputPrefix, enc, a.logger), nil
	}
	return storage.NewFileSink(cfg.OutputDir, enc, a.logger)
}
