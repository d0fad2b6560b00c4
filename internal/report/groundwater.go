package report

import (
	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

const groundwaterTitle = "Fiche de Prélèvement Eaux Souterraines"

func composeGroundwater(p *page, site domain.Site, survey domain.Survey, data *domain.GroundwaterData) {
	common := survey.Common
	info := data.GeneralInfo
	p.header(groundwaterTitle, survey.DisplayName())

	p.block(leftX, leftValueX, 40, "Informations générales", siteRows(site, "Nom de l'ouvrage", data.Name))

	date := firstNonEmpty(info.Date, common.Date)
	p.block(leftX, leftValueX, 85, "Conditions", []row{
		{"Date", renderDate(date)},
		{"Heure", renderTime(firstNonEmpty(info.Time, common.Time), date)},
		{"Température de l'air", renderUnit(info.AirTemp, "°C")},
		{"Météo", renderChoice(domain.WeatherChoices, info.Weather)},
	})

	p.block(rightX, rightValueX, 40, "Localisation", coordinateRows(&data.Location, xyzLabels))

	p.block(rightX, rightValueX, 70, "État de l'ouvrage", []row{
		{"Type d'ouvrage", RenderField(info.WellType)},
		{"Usage", RenderField(info.Usage)},
		{"Capot de protection", renderBool(info.HasProtectiveCover)},
		{"Margelle", renderBool(info.HasCurb)},
		{"Tubage", renderBool(info.HasTubing)},
		{"Cimentation", renderBool(info.HasSealing)},
		{"Mesure PID", renderUnit(data.PIDMeasurement, "ppm")},
	})

	well := domain.Recompute(data.Well)
	p.block(leftX, 70, 125, "Caractéristiques de l'ouvrage", []row{
		{"Diamètre intérieur", renderUnit(well.InnerDiameter, "mm")},
		{"Diamètre extérieur", renderUnit(well.OuterDiameter, "mm")},
		{"Hauteur du capot", renderUnit(well.CoverHeight, "m")},
		{"Profondeur totale", renderUnit(well.TotalDepth, "m")},
		{"Hauteur crépinée", renderUnit(well.ScreenHeight, "m")},
		{"Niveau d'eau", renderUnit(well.WaterLevel, "m")},
		{"Colonne d'eau", renderDerived(well.WaterColumnHeight, 2, "m")},
		{"Volume d'eau", renderDerived(well.TotalWaterVolume, 2, "L")},
		{"Trois volumes", renderDerived(well.ThreeVolumes, 2, "L")},
		{"Débit de purge", renderUnit(well.PurgingRate, "m3/h")},
		{"Temps de pompage", RenderField(well.PumpingTime)},
	})

	purge := data.Purge
	p.block(rightX, rightValueX, 125, "Purge", []row{
		{"Matériel", RenderField(purge.Equipment)},
		{"Matériaux", RenderField(purge.Materials)},
		{"Type de purge", renderChoice(domain.PurgeTypeChoices, purge.Type)},
		{"Débit début", renderUnit(purge.StartRate, "m3/h")},
		{"Débit fin", renderUnit(purge.EndRate, "m3/h")},
		{"Position pompe", renderUnit(purge.PumpPosition, "m")},
		{"Rabattement", renderUnit(purge.Drawdown, "m")},
		{"Charbon actif", renderBool(purge.Treatment.ActivatedCarbon)},
		{"Autre traitement", RenderField(purge.Treatment.Other)},
		{"Volume purgé", renderUnit(purge.PurgeVolume, "L")},
	})

	s := data.Sampling
	p.block(leftX, 70, 200, "Prélèvement", []row{
		{"Matériel", RenderField(s.Equipment)},
		{"Date de début", renderDate(s.StartDate)},
		{"Durée", RenderField(s.Duration)},
		{"Niveau fin de purge", renderUnit(s.PurgeLevel, "m")},
		{"Débit de pompage", renderUnit(s.PumpingRate, "l/min")},
		{"Position pompe", renderUnit(s.PumpPosition, "m")},
		{"Matériel nettoyé", renderBool(s.EquipmentCleaned)},
	})

	p.b.NewPage()
	p.section(leftX, 20, "Paramètres physico-chimiques")
	finalY := p.tripletTable(25, "Paramètre", data.Parameters.Rows(), noMeasurements)

	p.sampleManagement(finalY, data.SampleManagement, domain.GroundwaterLabChoices)
	p.photos("Documentation photographique", samplingPhotos(data.Photos))
}
