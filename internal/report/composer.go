// Package report turns survey records into page sequences, one fixed
// template per survey type plus the site list.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/layout"
)

// Composer builds report page sequences. It holds no per-report state and
// is safe for concurrent use; every call gets its own layout.Builder.
type Composer struct {
	images   layout.ImageLoader
	logger   *slog.Logger
	logoRef  string
	location *time.Location
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogo places the image behind ref in the header of every report.
func WithLogo(ref string) Option {
	return func(c *Composer) { c.logoRef = ref }
}

// WithLocation sets the timezone used to print creation dates.
func WithLocation(loc *time.Location) Option {
	return func(c *Composer) {
		if loc != nil {
			c.location = loc
		}
	}
}

// New creates a Composer. images may be nil to skip all images.
func New(images layout.ImageLoader, logger *slog.Logger, opts ...Option) *Composer {
	c := &Composer{
		images:   images,
		logger:   logger,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the report of one survey. Missing data never fails
// composition; only a survey whose payload does not match its type does.
func (c *Composer) Compose(ctx context.Context, site domain.Site, survey domain.Survey) (layout.Document, error) {
	if err := survey.Validate(); err != nil {
		return layout.Document{}, fmt.Errorf("compose survey %s: %w", survey.ID, err)
	}

	b := layout.NewBuilder(c.images, c.logger.With("survey_id", survey.ID.String()))
	d := &dispatcher{ctx: ctx, c: c, b: b, site: site, survey: survey}
	if err := survey.Specific.Accept(d); err != nil {
		return layout.Document{}, fmt.Errorf("compose survey %s: %w", survey.ID, err)
	}
	return b.Build(), nil
}

// dispatcher routes a payload to the composer of its type.
type dispatcher struct {
	ctx    context.Context
	c      *Composer
	b      *layout.Builder
	site   domain.Site
	survey domain.Survey
}

func (d *dispatcher) page() *page {
	return &page{ctx: d.ctx, b: d.b, logoRef: d.c.logoRef}
}

func (d *dispatcher) VisitSoil(data *domain.SoilData) error {
	composeSoil(d.page(), d.site, d.survey, data)
	return nil
}

func (d *dispatcher) VisitGroundwater(data *domain.GroundwaterData) error {
	composeGroundwater(d.page(), d.site, d.survey, data)
	return nil
}

func (d *dispatcher) VisitGas(data *domain.GasData) error {
	composeGas(d.page(), d.site, d.survey, data)
	return nil
}

func (d *dispatcher) VisitAmbientAir(data *domain.AmbientAirData) error {
	composeAmbientAir(d.page(), d.site, d.survey, data)
	return nil
}

func (d *dispatcher) VisitSurfaceWater(data *domain.SurfaceWaterData) error {
	composeSurfaceWater(d.page(), d.site, d.survey, data)
	return nil
}

func (d *dispatcher) VisitPID(data *domain.PIDData) error {
	composePID(d.page(), d.site, d.survey, data)
	return nil
}
