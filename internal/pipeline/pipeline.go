package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/layout"
	"github.com/couchcryptid/field-survey-reports/internal/observability"
	"github.com/google/uuid"
)

// RecordStore reads the records an export needs.
type RecordStore interface {
	GetSurvey(ctx context.Context, id uuid.UUID) (domain.Survey, error)
	ListSurveysBySite(ctx context.Context, siteID uuid.UUID) ([]domain.Survey, error)
	GetSite(ctx context.Context, id uuid.UUID) (domain.Site, error)
}

// Composer turns records into page sequences.
type Composer interface {
	Compose(ctx context.Context, site domain.Site, survey domain.Survey) (layout.Document, error)
	ComposeList(ctx context.Context, site domain.Site, surveys []domain.Survey) layout.Document
}

// Sink encodes and persists a finished document under a suggested filename.
type Sink interface {
	Write(ctx context.Context, doc layout.Document, filename string) (domain.ExportOutput, error)
}

// Notifier announces completed exports.
type Notifier interface {
	Publish(ctx context.Context, event domain.ExportEvent) error
}

// Result is the outcome of an export request. Skipped is set when the target
// was already in flight and nothing was done.
type Result struct {
	Output  domain.ExportOutput
	Skipped bool
}

// Exporter runs survey and site list exports.
type Exporter struct {
	store    RecordStore
	composer Composer
	sink     Sink
	listSink Sink
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics
	guard    *Guard
	location *time.Location
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithListSink writes site lists to a different sink than survey reports.
func WithListSink(s Sink) Option {
	return func(e *Exporter) { e.listSink = s }
}

// WithNotifier publishes an event after every written export.
func WithNotifier(n Notifier) Option {
	return func(e *Exporter) { e.notifier = n }
}

// WithLocation sets the timezone of filename timestamps.
func WithLocation(loc *time.Location) Option {
	return func(e *Exporter) { e.location = loc }
}

// New creates an Exporter with the given collaborators and observability.
func New(store RecordStore, composer Composer, sink Sink, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Exporter {
	e := &Exporter{
		store:    store,
		composer: composer,
		sink:     sink,
		listSink: sink,
		logger:   logger,
		metrics:  metrics,
		guard:    NewGuard(),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the export state of a target.
func (e *Exporter) State(target domain.ExportTarget) State {
	return e.guard.State(target)
}

// ExportSurvey builds and writes the report of one survey. The survey and its
// site are always read fresh from the store. A request for a survey that is
// already being exported returns a skipped Result and no error.
func (e *Exporter) ExportSurvey(ctx context.Context, id uuid.UUID) (Result, error) {
	target := domain.ExportTarget{Kind: domain.ExportSurvey, ID: id}
	return e.run(ctx, target, func(ctx context.Context) (domain.ExportOutput, domain.SurveyType, error) {
		survey, err := e.store.GetSurvey(ctx, id)
		if err != nil {
			return domain.ExportOutput{}, "", e.fail(target, StageFetch, err)
		}
		site, err := e.store.GetSite(ctx, survey.SiteID)
		if err != nil {
			return domain.ExportOutput{}, survey.Type, e.fail(target, StageFetch, err)
		}

		e.guard.Advance(target, StateComposing)
		doc, err := e.composer.Compose(ctx, site, survey)
		if err != nil {
			return domain.ExportOutput{}, survey.Type, e.fail(target, StageCompose, err)
		}

		out, err := e.write(ctx, target, e.sink, doc, domain.SurveyFilename(survey, e.location))
		return out, survey.Type, err
	})
}

// ExportSurveyList builds and writes the list of a site's surveys.
func (e *Exporter) ExportSurveyList(ctx context.Context, siteID uuid.UUID) (Result, error) {
	target := domain.ExportTarget{Kind: domain.ExportSite, ID: siteID}
	return e.run(ctx, target, func(ctx context.Context) (domain.ExportOutput, domain.SurveyType, error) {
		site, err := e.store.GetSite(ctx, siteID)
		if err != nil {
			return domain.ExportOutput{}, "", e.fail(target, StageFetch, err)
		}
		surveys, err := e.store.ListSurveysBySite(ctx, siteID)
		if err != nil {
			return domain.ExportOutput{}, "", e.fail(target, StageFetch, err)
		}

		e.guard.Advance(target, StateComposing)
		doc := e.composer.ComposeList(ctx, site, surveys)

		out, err := e.write(ctx, target, e.listSink, doc, domain.ListFilename(site))
		return out, "", err
	})
}

type exportFunc func(ctx context.Context) (domain.ExportOutput, domain.SurveyType, error)

// run holds the in-flight guard of target around one export.
func (e *Exporter) run(ctx context.Context, target domain.ExportTarget, export exportFunc) (Result, error) {
	kind := string(target.Kind)
	logger := e.logger.With("target", target.String())

	if !e.guard.Begin(target) {
		e.metrics.ExportsSkipped.WithLabelValues(kind).Inc()
		logger.Info("export already in flight, request ignored")
		return Result{Skipped: true}, nil
	}
	e.metrics.ExportsStarted.WithLabelValues(kind).Inc()
	e.metrics.ExportsInFlight.Inc()
	defer e.metrics.ExportsInFlight.Dec()

	// An export that started runs to completion or failure.
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	out, surveyType, err := e.guarded(ctx, target, export)
	if err != nil {
		e.guard.Fail(target)
		e.metrics.ExportsCompleted.WithLabelValues(kind, "failed").Inc()
		logger.Error("export failed", "error", err)
		return Result{}, err
	}

	e.guard.Finish(target)
	e.metrics.ExportsCompleted.WithLabelValues(kind, "success").Inc()
	e.metrics.ExportDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	logger.Info("export complete", "filename", out.Filename, "location", out.Location, "pages", out.Pages)

	e.notify(ctx, logger, domain.ExportEvent{
		Target:     target.String(),
		Kind:       target.Kind,
		SurveyType: surveyType,
		Filename:   out.Filename,
		Location:   out.Location,
		Pages:      out.Pages,
		ExportedAt: domain.Now().UTC(),
	})
	return Result{Output: out}, nil
}

// guarded runs export and turns a panic into an ExportError for the stage the
// target was in, so the guard is always released.
func (e *Exporter) guarded(ctx context.Context, target domain.ExportTarget, export exportFunc) (out domain.ExportOutput, surveyType domain.SurveyType, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = e.fail(target, stageOf(e.guard.State(target)), fmt.Errorf("panic: %v", r))
		}
	}()
	return export(ctx)
}

func stageOf(s State) Stage {
	switch s {
	case StateFetching:
		return StageFetch
	case StateWriting:
		return StageWrite
	default:
		return StageCompose
	}
}

func (e *Exporter) write(ctx context.Context, target domain.ExportTarget, sink Sink, doc layout.Document, filename string) (domain.ExportOutput, error) {
	e.metrics.ReportPages.Observe(float64(doc.PageCount()))
	e.guard.Advance(target, StateWriting)

	out, err := sink.Write(ctx, doc, filename)
	if err != nil {
		return domain.ExportOutput{}, e.fail(target, StageWrite, err)
	}
	if out.Filename == "" {
		out.Filename = filename
	}
	if out.Pages == 0 {
		out.Pages = doc.PageCount()
	}
	return out, nil
}

func (e *Exporter) fail(target domain.ExportTarget, stage Stage, err error) error {
	return &ExportError{Target: target, Stage: stage, Message: messageFor(target.Kind), Err: err}
}

// notify publishes the export event. A notifier failure does not undo the
// export.
func (e *Exporter) notify(ctx context.Context, logger *slog.Logger, event domain.ExportEvent) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Publish(ctx, event); err != nil {
		e.metrics.EventsPublished.WithLabelValues("error").Inc()
		logger.Warn("publish export event failed", "error", err)
		return
	}
	e.metrics.EventsPublished.WithLabelValues("success").Inc()
}
