package report

import (
	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

const pidTitle = "Mesures semi-quantitatives des gaz du sol"

func composePID(p *page, site domain.Site, survey domain.Survey, data *domain.PIDData) {
	common := survey.Common
	p.header(pidTitle, survey.DisplayName())

	p.block(leftX, leftValueX, 40, "Informations générales", siteRows(site, "Campagne", survey.DisplayName()))
	p.block(leftX, leftValueX, 85, "Date et heure", []row{
		{"Date", renderDate(common.Date)},
		{"Heure", renderTime(common.Time, common.Date)},
	})

	p.block(rightX, rightValueX, 40, "Localisation", coordinateRows(common.Coordinates, gpsLabels))
	p.block(rightX, rightValueX, 70, "Description de l'ouvrage", []row{
		{"Type d'ouvrage", renderChoice(domain.StructureTypeChoices, data.Structure.Type)},
		{"Détails", RenderField(data.Structure.Details)},
	})

	p.block(leftX, 70, 110, "Conditions météorologiques", weatherRows(data.Weather))

	p.b.NewPage()
	p.section(leftX, 20, "Mesures")
	head := []string{"Localisation", "PID (ppmV)", "O2 (%)", "H2S (ppmV)", "CH4 (%)", "CO (ppmV)"}
	body := make([][]string, 0, len(data.Measurements))
	for _, m := range data.Measurements {
		body = append(body, []string{
			RenderField(m.Location),
			RenderField(m.PID),
			RenderField(m.O2),
			RenderField(m.H2S),
			RenderField(m.CH4),
			RenderField(m.CO),
		})
	}
	if len(body) == 0 {
		body = emptyRow(len(head), noMeasurements)
	}
	p.table(25, head, body, []float64{40, 30, 30, 30, 30, 30})
}
