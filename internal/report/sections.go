package report

import (
	"context"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/layout"
)

// Fixed two-column form geometry, in millimetres.
const (
	leftX       = 10.0
	leftValueX  = 60.0
	rightX      = 110.0
	rightValueX = 160.0
	lineStep    = 5.0
	sectionGap  = 10.0

	titleSize   = 16.0
	sectionSize = 12.0
	bodySize    = 10.0

	fullWidth = layout.PageWidth - 2*layout.Margin
	halfWidth = rightX - leftX - 5
)

const (
	noPhoto        = " (image indisponible)"
	noMeasurements = "Aucune mesure renseignée"
)

type row struct {
	label, value string
}

type photo struct {
	ref, caption string
}

// page wraps a builder with the form helpers shared by every template.
type page struct {
	ctx     context.Context
	b       *layout.Builder
	logoRef string
}

// header places the logo and the report title on the current page.
func (p *page) header(title, name string) {
	p.b.SetTitle(title + " - " + name)
	if p.logoRef != "" {
		p.b.Image(p.ctx, 10, 10, p.logoRef, 30, 15)
	}
	p.b.SetFont(titleSize, true)
	p.b.Text(45, 20, title)
	p.b.SetFont(bodySize, false)
}

func (p *page) section(x, y float64, title string) {
	p.b.SetFont(sectionSize, true)
	p.b.Text(x, y, title)
	p.b.SetFont(bodySize, false)
}

// rows places label/value pairs one line apart and returns the next free Y.
func (p *page) rows(x, valueX, y float64, rows []row) float64 {
	for _, r := range rows {
		p.b.Text(x, y, r.label+" :")
		p.b.Text(valueX, y, r.value)
		y += lineStep
	}
	return y
}

// block places a section title and its rows below it.
func (p *page) block(x, valueX, y float64, title string, rows []row) float64 {
	p.section(x, y, title)
	return p.rows(x, valueX, y+sectionGap, rows)
}

// longField places a label and a wrapped free-text value under it.
func (p *page) longField(x, y, width float64, label, value string) float64 {
	p.b.Text(x, y, label+" :")
	return p.b.Paragraph(x, y+lineStep, width, RenderField(value))
}

// ensureSpace starts a new page when fewer than need millimetres remain
// below y.
func (p *page) ensureSpace(y, need float64) float64 {
	if y+need > layout.PageHeight-layout.BottomMargin {
		p.b.NewPage()
		return layout.TopMargin
	}
	return y
}

func (p *page) table(y float64, head []string, body [][]string, widths []float64) float64 {
	style := layout.DefaultTableStyle()
	style.ColumnWidths = widths
	return p.b.Table(y, head, body, style)
}

// emptyRow is the single body row shown instead of an empty collection.
func emptyRow(cols int, message string) [][]string {
	r := make([]string, cols)
	r[0] = message
	return [][]string{r}
}

// tripletTable renders start/intermediate/end readings, or a single
// message row when nothing was recorded.
func (p *page) tripletTable(y float64, firstHead string, rows []domain.LabeledTriplet, empty string) float64 {
	head := []string{firstHead, "Début", "Intermédiaire", "Fin"}
	widths := []float64{55, 45, 45, 45}

	recorded := false
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		if !r.IsEmpty() {
			recorded = true
		}
		body = append(body, []string{r.Label, RenderField(r.Start), RenderField(r.Intermediate), RenderField(r.End)})
	}
	if !recorded {
		body = emptyRow(len(head), empty)
	}
	return p.table(y, head, body, widths)
}

// readingsTable renders the five multi-gas readings as one row.
func (p *page) readingsTable(y float64, g domain.GasReadings) float64 {
	head := []string{"PID (ppmV)", "O2 (%)", "H2S (ppmV)", "CH4 (%)", "CO (ppmV)"}
	body := [][]string{{RenderField(g.PID), RenderField(g.O2), RenderField(g.H2S), RenderField(g.CH4), RenderField(g.CO)}}
	return p.table(y, head, body, []float64{38, 38, 38, 38, 38})
}

// photos appends a photography section, two images per page. Each image
// that cannot be placed keeps its caption with a note and the section goes
// on with the next one.
func (p *page) photos(title string, photos []photo) {
	if len(photos) == 0 {
		return
	}
	p.b.NewPage()
	p.section(leftX, layout.TopMargin, title)

	slots := []float64{30, 155}
	for i, ph := range photos {
		slot := i % len(slots)
		if i > 0 && slot == 0 {
			p.b.NewPage()
		}
		y := slots[slot]
		caption := ph.caption
		if !p.b.Image(p.ctx, leftX, y, ph.ref, 180, 110) {
			caption += noPhoto
		}
		p.b.Text(leftX, y+115, caption)
	}
}

// siteRows are the general information lines every report starts with.
func siteRows(site domain.Site, nameLabel, name string) []row {
	return []row{
		{nameLabel, RenderField(name)},
		{"Numéro d'affaire", RenderField(site.ProjectNumber)},
		{"Client", RenderField(site.Name)},
		{"Adresse et commune", RenderField(site.Address())},
		{"Chef de projet", RenderField(site.ProjectManager)},
		{"Opérateur", RenderField(site.EngineerInCharge)},
	}
}

func sampleManagementRows(sm domain.SampleManagement, labs []domain.Choice) []row {
	return []row{
		{"Transporteur", RenderField(sm.Transporter)},
		{"Laboratoire", renderChoice(labs, sm.Laboratory)},
		{"Conditionnement", RenderField(sm.Conditioning)},
		{"Date d'envoi", renderDate(sm.ShippingDate)},
	}
}

// sampleManagement places the sample handling block below a table.
func (p *page) sampleManagement(y float64, sm domain.SampleManagement, labs []domain.Choice) float64 {
	y = p.ensureSpace(y+sectionGap, 45)
	return p.block(leftX, 80, y, "Gestion des échantillons", sampleManagementRows(sm, labs))
}

func weatherRows(w domain.WeatherBlock) []row {
	return []row{
		{"Description", RenderField(w.Description)},
		{"Température extérieure", renderUnit(w.ExternalTemp, "°C")},
		{"Température intérieure", renderUnit(w.InternalTemp, "°C")},
		{"Pression atmosphérique", renderUnit(w.Pressure, "hPa")},
		{"Humidité", renderUnit(w.Humidity, "%")},
		{"Vent", RenderField(w.WindSpeedDirection)},
	}
}

func coordinateRows(c *domain.Coordinates, labels [3]string) []row {
	if c == nil {
		c = &domain.Coordinates{}
	}
	return []row{
		{labels[0], RenderField(c.X)},
		{labels[1], RenderField(c.Y)},
		{labels[2], RenderField(c.Z)},
	}
}

var (
	xyzLabels = [3]string{"X", "Y", "Z"}
	gpsLabels = [3]string{"Longitude", "Latitude", "Altitude"}
)

// flowControl places the pumping window block and its flow-rate triplet.
func (p *page) flowControl(y float64, f domain.FlowControl) float64 {
	y = p.ensureSpace(y, 60)
	y = p.block(leftX, leftValueX, y, "Contrôle du débit", []row{
		{"Heure de début", RenderField(f.StartTime)},
		{"Heure de fin", RenderField(f.EndTime)},
		{"Durée", RenderField(f.Duration)},
	})
	y = p.tripletTable(y, "Débit", []domain.LabeledTriplet{{Label: "Débit (l/min)", Triplet: f.FlowRates}},
		"Aucune mesure de débit renseignée")
	return p.rows(leftX, leftValueX, y+lineStep, []row{
		{"Débit moyen", renderUnit(f.AverageFlow, "l/min")},
		{"Volume total", renderUnit(f.TotalVolume, "l")},
	})
}

// laboratory places the laboratory and shipment block.
func (p *page) laboratory(y float64, lab domain.Laboratory) float64 {
	y = p.ensureSpace(y+sectionGap, 55)
	y = p.block(leftX, 80, y, "Laboratoire et transport", []row{
		{"Laboratoire", RenderField(lab.Name)},
		{"Conditionnement", RenderField(lab.Packaging)},
		{"Transporteur", RenderField(lab.Transporter)},
		{"Date de livraison", renderDate(lab.DeliveryDate)},
	})
	return p.longField(leftX, y, fullWidth, "Substances à analyser", lab.SubstancesToAnalyze)
}
