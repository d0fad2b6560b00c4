package report

import (
	"context"
	"fmt"
	"slices"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/layout"
)

const listTitle = "Liste des fiches de terrain"

// ComposeList builds the one-table overview of a site's surveys, newest
// first. Only summary fields are read; survey payloads may be nil.
func (c *Composer) ComposeList(ctx context.Context, site domain.Site, surveys []domain.Survey) layout.Document {
	b := layout.NewBuilder(c.images, c.logger.With("site_id", site.ID.String()))
	b.SetTitle(listTitle + " - " + RenderField(site.Name))

	if c.logoRef != "" {
		b.Image(ctx, 10, 10, c.logoRef, 40, 20)
	}
	b.SetFont(titleSize, true)
	b.Text(60, 20, listTitle)
	b.SetFont(bodySize, false)

	b.Text(leftX, 40, "Site : "+RenderField(site.Name))
	b.Text(leftX, 45, "Localisation : "+RenderField(site.Address()))
	b.Text(leftX, 50, "N° de projet : "+RenderField(site.ProjectNumber))
	if site.Coordinates != nil {
		b.Text(leftX, 55, fmt.Sprintf("Coordonnées : %.6f, %.6f", site.Coordinates.Lat(), site.Coordinates.Lon()))
	}

	sorted := slices.Clone(surveys)
	slices.SortStableFunc(sorted, func(a, b domain.Survey) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	head := []string{"Date", "Nom", "Type", "Opérateurs"}
	body := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		date := Placeholder
		if !s.CreatedAt.IsZero() {
			date = s.CreatedAt.In(c.location).Format("02/01/2006")
		}
		body = append(body, []string{date, s.DisplayName(), s.Type.Label(), renderList(s.Common.FieldTeam)})
	}
	if len(body) == 0 {
		body = emptyRow(len(head), "Aucune fiche de terrain")
	}

	style := layout.DefaultTableStyle()
	style.ColumnWidths = []float64{25, 65, 40, 60}
	b.Table(60, head, body, style)

	return b.Build()
}
