package report

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

const surfaceWaterTitle = "Fiche de prélèvement des eaux superficielles"

func composeSurfaceWater(p *page, site domain.Site, survey domain.Survey, data *domain.SurfaceWaterData) {
	common := survey.Common
	info := data.GeneralInfo
	p.header(surfaceWaterTitle, survey.DisplayName())

	p.block(leftX, leftValueX, 40, "Informations générales", siteRows(site, "Nom du prélèvement", data.Name))

	date := firstNonEmpty(info.Date, common.Date)
	p.block(leftX, leftValueX, 85, "Conditions", []row{
		{"Date", renderDate(date)},
		{"Heure", renderTime(firstNonEmpty(info.Time, common.Time), date)},
		{"Température de l'air", renderUnit(info.AirTemperature, "°C")},
		{"Météo", RenderField(firstNonEmpty(info.WeatherCondition, common.WeatherConditions))},
	})

	p.block(rightX, rightValueX, 40, "Localisation", coordinateRows(&data.Location, xyzLabels))
	p.block(rightX, rightValueX, 70, "Conditions de prélèvement", []row{
		{"Type", renderChoice(domain.SurfaceSamplingTypeChoices, data.Sampling.Type)},
		{"Matériel", renderChoice(domain.SurfaceEquipmentChoices, data.Sampling.Equipment)},
		{"Profondeur", renderUnit(data.Sampling.Depth, "m")},
	})

	st := data.Station
	y := p.block(leftX, leftValueX, 120, "Description de la station", []row{
		{"Type d'eau", renderChoice(domain.WaterTypeChoices, st.WaterType)},
		{"Débit estimé", renderChoice(domain.EstimatedFlowChoices, st.EstimatedFlow)},
		{"Écoulement", renderChoice(domain.FlowTypeChoices, st.FlowType)},
	})
	y = p.longField(leftX, y, halfWidth, "Description", st.Description)
	p.longField(leftX, y+lineStep, halfWidth, "Observations", st.Observations)

	obs := data.FieldObservations
	p.block(rightX, rightValueX, 120, "Observations de terrain", []row{
		{"Turbidité", renderChoice(domain.TurbidityChoices, obs.Turbidity)},
		{"Couleur", RenderField(obs.WaterColor)},
		{"Feuilles / mousses", renderBool(obs.HasLeavesMoss)},
		{"Éléments flottants", renderBool(obs.HasFloating)},
		{"Odeur", RenderField(obs.WaterOdor)},
		{"Ombrage", renderBool(obs.HasShade)},
	})

	p.b.NewPage()
	p.section(leftX, 20, "Paramètres in situ")
	finalY := p.tripletTable(25, "Paramètre", data.Parameters.Rows(), noMeasurements)
	p.sampleManagement(finalY, data.SampleManagement, nil)

	p.photos("Documentation photographique", samplingPhotos(data.Photos))
}

// samplingPhotos captions each non-blank reference by its position.
func samplingPhotos(refs []string) []photo {
	var photos []photo
	for i, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		photos = append(photos, photo{ref: ref, caption: fmt.Sprintf("Photo du prélèvement %d", i+1)})
	}
	return photos
}
