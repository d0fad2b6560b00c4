package report

import (
	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

const (
	gasTitle = "Fiche de prélèvement des gaz du sol"
	airTitle = "Fiche de prélèvement d'air ambiant"
)

func composeGas(p *page, site domain.Site, survey domain.Survey, data *domain.GasData) {
	common := survey.Common
	p.header(gasTitle, survey.DisplayName())

	p.block(leftX, leftValueX, 40, "Informations générales",
		siteRows(site, "Nom de l'ouvrage", firstNonEmpty(data.SampleDescription.Name, common.SamplingName)))
	p.block(leftX, leftValueX, 85, "Date et heure", []row{
		{"Date", renderDate(common.Date)},
		{"Heure", renderTime(common.Time, common.Date)},
	})

	p.block(rightX, rightValueX, 40, "Localisation", coordinateRows(common.Coordinates, gpsLabels))
	p.block(rightX, rightValueX, 70, "Description de l'ouvrage", []row{
		{"Type d'ouvrage", renderChoice(domain.StructureTypeChoices, data.SampleDescription.StructureType)},
		{"Détails", RenderField(data.SampleDescription.Details)},
	})

	p.block(leftX, 70, 110, "Conditions météorologiques", weatherRows(data.Weather))

	s := data.Sampling
	y := p.block(rightX, rightValueX, 110, "Description du prélèvement", []row{
		{"Type", renderChoice(domain.GasSamplingTypeChoices, s.Type)},
		{"Nombre de supports", RenderField(s.SupportCount)},
		{"Type de support", renderChoice(domain.SupportTypeChoices, s.SupportType)},
		{"Profondeur", renderUnit(s.Depth, "m")},
		{"Étanchéité", RenderField(s.SealType)},
	})
	p.longField(rightX, y, 90, "Description des sols", s.SoilDescription)

	p.b.NewPage()
	p.section(leftX, 20, "Purge")
	y = p.longField(leftX, 30, fullWidth, "Détails", data.Purge.Details)
	y = p.readingsTable(y+lineStep, data.Purge.Measurements)
	y = p.flowControl(y+sectionGap, data.Purge.Flow)
	p.laboratory(y, data.Laboratory)
}

func composeAmbientAir(p *page, site domain.Site, survey domain.Survey, data *domain.AmbientAirData) {
	common := survey.Common
	p.header(airTitle, survey.DisplayName())

	p.block(leftX, leftValueX, 40, "Informations générales", siteRows(site, "Nom du prélèvement", common.SamplingName))
	p.block(leftX, leftValueX, 85, "Date et heure", []row{
		{"Date", renderDate(common.Date)},
		{"Heure", renderTime(common.Time, common.Date)},
	})

	loc := data.Location
	p.block(rightX, rightValueX, 40, "Localisation", []row{
		{"Pièce", RenderField(loc.Room)},
		{"Position", RenderField(loc.Position)},
		{"Latitude", RenderField(loc.Latitude)},
		{"Longitude", RenderField(loc.Longitude)},
	})

	p.block(leftX, 70, 110, "Conditions météorologiques", weatherRows(data.Weather))

	s := data.Sampling
	p.block(rightX, rightValueX, 110, "Description du prélèvement", []row{
		{"Type", renderChoice(domain.AirSamplingTypeChoices, s.Type)},
		{"Nombre de supports", RenderField(s.SupportCount)},
		{"Type de support", renderChoice(domain.SupportTypeChoices, s.SupportType)},
		{"Hauteur", renderUnit(s.Height, "m")},
		{"Ventilation", renderBool(s.Ventilation)},
		{"Chauffage", RenderField(s.Heating)},
		{"Travaux récents", RenderField(s.RecentWork)},
	})

	p.b.NewPage()
	p.section(leftX, 20, "Installation et environnement")
	y := p.longField(leftX, 30, fullWidth, "Description de l'installation", s.InstallationDescription)
	y = p.longField(leftX, y+lineStep, fullWidth, "Sources interférentes", s.InterferingSources)
	y = p.longField(leftX, y+lineStep, fullWidth, "Activités interférentes", s.InterferingActivities)

	p.section(leftX, y+sectionGap, "Mesures")
	y = p.readingsTable(y+sectionGap+lineStep, data.Measurements)
	y = p.flowControl(y+sectionGap, data.Flow)
	p.laboratory(y, data.Laboratory)
}
