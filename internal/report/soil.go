package report

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

const soilTitle = "Fiche de suivi de sondage et prélèvement de sol"

func composeSoil(p *page, site domain.Site, survey domain.Survey, data *domain.SoilData) {
	common := survey.Common
	p.header(soilTitle, survey.DisplayName())

	p.block(leftX, leftValueX, 40, "Informations générales", append(
		siteRows(site, "Nom du sondage", data.Name),
		row{"Entreprise de forage", RenderField(site.DrillingCompany)},
	))

	weather, temperature := splitWeather(common.WeatherConditions)
	p.block(leftX, leftValueX, 90, "Conditions météorologiques", []row{
		{"Date", renderDate(common.Date)},
		{"Heure", renderTime(common.Time, common.Date)},
		{"Météo", weather},
		{"Température", temperature},
	})

	p.block(rightX, rightValueX, 40, "Localisation", coordinateRows(&data.Coordinates, [3]string{"X", "Y", "Z sol"}))

	drill := data.DrillingInfo
	y := p.block(rightX, rightValueX, 75, "Informations sur le sondage", []row{
		{"Outil de sondage", renderChoice(domain.SoilToolChoices, drill.Tool)},
		{"Diamètre sondage", renderUnit(drill.Diameter, "mm")},
		{"Profondeur atteinte", renderUnit(drill.Depth, "m")},
		{"Rebouchage et réfection", RenderField(drill.Refection)},
		{"Gestion des déblais", RenderField(drill.CuttingsManagement)},
	})
	p.longField(rightX, y, 90, "Remarques / Revêtement", drill.Remarks)

	p.b.NewPage()
	p.section(leftX, 20, "Observations")
	head := []string{"Profondeur", "Description lithologique", "Eau", "Organoleptiques", "PID", "Échantillons"}
	widths := []float64{22, 60, 20, 33, 20, 35}
	body := make([][]string, 0, len(data.Observations))
	for _, o := range data.Observations {
		body = append(body, []string{
			renderUnit(o.Depth, "m"),
			RenderField(o.Lithology),
			RenderField(o.Water),
			RenderField(o.Organoleptic),
			renderUnit(o.PID, "ppm"),
			RenderField(o.Samples),
		})
	}
	if len(body) == 0 {
		body = emptyRow(len(head), "Aucune observation renseignée")
	}
	finalY := p.table(25, head, body, widths)

	p.sampleManagement(finalY, data.SampleManagement, nil)

	p.photos("Documentation photographique", soilPhotos(data))
}

func soilPhotos(data *domain.SoilData) []photo {
	var photos []photo
	for i, ref := range data.MainPhotos {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		photos = append(photos, photo{ref: ref, caption: fmt.Sprintf("Photo du sondage %d", i+1)})
	}
	for _, o := range data.Observations {
		for _, ref := range o.Photos {
			if strings.TrimSpace(ref) == "" {
				continue
			}
			photos = append(photos, photo{ref: ref, caption: "Observation à " + renderUnit(o.Depth, "m")})
		}
	}
	return photos
}
