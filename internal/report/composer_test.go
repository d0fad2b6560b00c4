package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/layout"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type stubLoader struct {
	fail  map[string]bool
	calls []string
}

func (s *stubLoader) Load(_ context.Context, ref string) (layout.ImageData, error) {
	s.calls = append(s.calls, ref)
	if s.fail[ref] {
		return layout.ImageData{}, fmt.Errorf("fetch %s: status 404", ref)
	}
	return layout.ImageData{Data: []byte("jpeg:" + ref), Format: "JPEG"}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSite() domain.Site {
	return domain.Site{
		ID:               uuid.MustParse("5c2f7a1e-8b4d-4e0f-a1c2-3d4e5f6a7b8c"),
		Name:             "Société Dupont",
		Location:         "12 rue des Lilas",
		City:             "Lyon",
		ProjectNumber:    "AFF-2024-017",
		ProjectManager:   "C. Martin",
		EngineerInCharge: "L. Bernard",
		DrillingCompany:  "Forages du Rhône",
		Status:           domain.SiteActive,
	}
}

func emptySurvey(t *testing.T, st domain.SurveyType) domain.Survey {
	t.Helper()
	specific, err := domain.NewSpecific(st)
	require.NoError(t, err)
	return domain.Survey{ID: uuid.New(), Type: st, Specific: specific}
}

func compose(t *testing.T, c *Composer, site domain.Site, s domain.Survey) layout.Document {
	t.Helper()
	doc, err := c.Compose(context.Background(), site, s)
	require.NoError(t, err)
	return doc
}

// valueOf returns the value printed next to label, or "" when the label is
// not on any page.
func valueOf(doc layout.Document, label string) string {
	for _, p := range doc.Pages {
		for i, ins := range p.Instructions {
			txt, ok := ins.(layout.Text)
			if !ok || txt.Content != label+" :" || i+1 >= len(p.Instructions) {
				continue
			}
			if next, ok := p.Instructions[i+1].(layout.Text); ok {
				return next.Content
			}
		}
	}
	return ""
}

// cellTexts returns every table cell with its wrapped lines joined back.
func cellTexts(doc layout.Document) []string {
	var out []string
	for _, t := range doc.Tables() {
		for _, r := range t.Rows {
			for _, c := range r.Cells {
				out = append(out, strings.Join(c, " "))
			}
		}
	}
	return out
}

// --- tests ---

func TestRenderField(t *testing.T) {
	assert.Equal(t, Placeholder, RenderField(""))
	assert.Equal(t, Placeholder, RenderField("   "))
	assert.Equal(t, "Argile", RenderField(" Argile "))
	assert.Equal(t, "Non renseigné", Placeholder)
}

func TestRenderHelpers(t *testing.T) {
	assert.Equal(t, "3 m", renderUnit("3", "m"))
	assert.Equal(t, Placeholder, renderUnit("", "m"))
	assert.Equal(t, "14/05/2024", renderDate("2024-05-14T09:30"))
	assert.Equal(t, "14/05/2024", renderDate("2024-05-14"))
	assert.Equal(t, "mai 2024", renderDate("mai 2024"))
	assert.Equal(t, Placeholder, renderDate(""))
	assert.Equal(t, "09:30", renderTime("", "2024-05-14T09:30"))
	assert.Equal(t, "10h", renderTime("10h", "2024-05-14T09:30"))
	assert.Equal(t, Placeholder, renderTime("", "2024-05-14"))
	assert.Equal(t, "Ensoleillé", renderChoice(domain.WeatherChoices, "sunny"))
	assert.Equal(t, "A, B", renderList([]string{"A", " ", "B"}))
	assert.Equal(t, Placeholder, renderList(nil))

	desc, temp := splitWeather("Nuageux - 12°C")
	assert.Equal(t, "Nuageux", desc)
	assert.Equal(t, "12°C", temp)
	desc, temp = splitWeather("")
	assert.Equal(t, Placeholder, desc)
	assert.Equal(t, Placeholder, temp)
}

func TestCompose_EmptySurveysRenderPlaceholders(t *testing.T) {
	c := New(nil, discardLogger())

	for _, st := range domain.SurveyTypes {
		t.Run(string(st), func(t *testing.T) {
			doc := compose(t, c, domain.Site{}, emptySurvey(t, st))

			assert.GreaterOrEqual(t, doc.PageCount(), 2)
			assert.Contains(t, doc.Texts(), Placeholder)
			assert.Equal(t, Placeholder, valueOf(doc, "Client"))
			assert.Equal(t, Placeholder, valueOf(doc, "Numéro d'affaire"))

			for _, p := range doc.Pages {
				for _, ins := range p.Instructions {
					if txt, ok := ins.(layout.Text); ok {
						assert.NotEmpty(t, strings.TrimSpace(txt.Content), "blank text at (%v,%v)", txt.X, txt.Y)
					}
				}
			}
		})
	}
}

func TestCompose_IsDeterministic(t *testing.T) {
	c := New(nil, discardLogger())
	s := emptySurvey(t, domain.TypeGroundwater)
	s.Specific.(*domain.GroundwaterData).Well = domain.WellCharacteristics{TotalDepth: "10", WaterLevel: "3", InnerDiameter: "110"}

	first := compose(t, c, testSite(), s)
	second := compose(t, c, testSite(), s)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("compose not deterministic (-first +second):\n%s", diff)
	}
}

func TestCompose_ShapeMismatch(t *testing.T) {
	c := New(nil, discardLogger())
	_, err := c.Compose(context.Background(), testSite(), domain.Survey{Type: domain.TypeGas, Specific: &domain.SoilData{}})
	require.ErrorIs(t, err, domain.ErrShapeMismatch)
}

func TestComposeSoil_NoObservationsNoPhotos(t *testing.T) {
	c := New(nil, discardLogger())
	s := emptySurvey(t, domain.TypeSoil)
	s.Specific.(*domain.SoilData).Name = "SC1"

	doc := compose(t, c, testSite(), s)

	assert.Equal(t, 2, doc.PageCount())
	texts := doc.Texts()
	assert.Contains(t, texts, soilTitle)
	assert.Contains(t, texts, "Informations générales")
	assert.Contains(t, texts, "Gestion des échantillons")
	assert.Contains(t, cellTexts(doc), "Aucune observation renseignée")
	assert.NotContains(t, texts, "Documentation photographique")
	assert.Empty(t, doc.Images())

	assert.Equal(t, "SC1", valueOf(doc, "Nom du sondage"))
	assert.Equal(t, "Société Dupont", valueOf(doc, "Client"))
	assert.Equal(t, "12 rue des Lilas, Lyon", valueOf(doc, "Adresse et commune"))
	assert.Equal(t, "Forages du Rhône", valueOf(doc, "Entreprise de forage"))
	for _, label := range []string{"Transporteur", "Laboratoire", "Conditionnement", "Date d'envoi", "Outil de sondage", "Date", "Météo"} {
		assert.Equal(t, Placeholder, valueOf(doc, label), label)
	}
}

func TestComposeSoil_FullRecord(t *testing.T) {
	c := New(nil, discardLogger())
	s := emptySurvey(t, domain.TypeSoil)
	s.Common = domain.CommonData{Date: "2024-05-14T09:30", WeatherConditions: "Ensoleillé - 18°C"}
	data := s.Specific.(*domain.SoilData)
	data.Name = "SC2"
	data.DrillingInfo = domain.DrillingInfo{Tool: "Géoprobe", Diameter: "63", Depth: "3.5", Remarks: "Enrobé sur 10 cm"}
	data.Observations = []domain.SoilObservation{
		{Depth: "0.5", Lithology: "Remblais", PID: "1.2", Samples: "SC2 (0-0.5)"},
		{Depth: "1.5", Lithology: "Argile brune"},
	}
	data.SampleManagement = domain.SampleManagement{Laboratory: "Wessling", ShippingDate: "2024-05-15"}

	doc := compose(t, c, testSite(), s)

	assert.Equal(t, "14/05/2024", valueOf(doc, "Date"))
	assert.Equal(t, "09:30", valueOf(doc, "Heure"))
	assert.Equal(t, "Ensoleillé", valueOf(doc, "Météo"))
	assert.Equal(t, "18°C", valueOf(doc, "Température"))
	assert.Equal(t, "63 mm", valueOf(doc, "Diamètre sondage"))
	assert.Equal(t, "3.5 m", valueOf(doc, "Profondeur atteinte"))
	assert.Equal(t, "15/05/2024", valueOf(doc, "Date d'envoi"))

	tables := doc.Tables()
	require.Len(t, tables, 1)
	obs := tables[0]
	require.Len(t, obs.Rows, 3)
	assert.Equal(t, []string{"0.5 m"}, obs.Rows[1].Cells[0])
	assert.Equal(t, []string{"1.2 ppm"}, obs.Rows[1].Cells[4])
	assert.Equal(t, Placeholder, strings.Join(obs.Rows[2].Cells[4], " "))

	// Sample management starts below the observation table.
	for _, ins := range doc.Pages[1].Instructions {
		if txt, ok := ins.(layout.Text); ok && txt.Content == "Gestion des échantillons" {
			assert.Greater(t, txt.Y, obs.Y+obs.Height())
		}
	}
}

func TestComposeSoil_ImageFailureDoesNotStopReport(t *testing.T) {
	loader := &stubLoader{fail: map[string]bool{"sites/a/p2.jpg": true}}
	c := New(loader, discardLogger())
	s := emptySurvey(t, domain.TypeSoil)
	data := s.Specific.(*domain.SoilData)
	data.MainPhotos = []string{"sites/a/p1.jpg", "sites/a/p2.jpg", "sites/a/p3.jpg"}
	data.Observations = []domain.SoilObservation{{Depth: "1", Photos: []string{"sites/a/o1.jpg"}}}

	doc := compose(t, c, testSite(), s)

	assert.Equal(t, []string{"sites/a/p1.jpg", "sites/a/p2.jpg", "sites/a/p3.jpg", "sites/a/o1.jpg"}, loader.calls)
	images := doc.Images()
	require.Len(t, images, 3)
	assert.Equal(t, "sites/a/p3.jpg", images[1].Ref)

	texts := doc.Texts()
	assert.Contains(t, texts, "Photo du sondage 1")
	assert.Contains(t, texts, "Photo du sondage 2"+noPhoto)
	assert.Contains(t, texts, "Photo du sondage 3")
	assert.Contains(t, texts, "Observation à 1 m")
	assert.Contains(t, texts, "Gestion des échantillons")
	// general pages + two photo pages
	assert.Equal(t, 4, doc.PageCount())
}

func TestComposeGroundwater_DerivedValues(t *testing.T) {
	c := New(nil, discardLogger())
	s := emptySurvey(t, domain.TypeGroundwater)
	data := s.Specific.(*domain.GroundwaterData)
	data.Name = "PZ1"
	data.GeneralInfo.Weather = "rainy"
	data.Well = domain.WellCharacteristics{TotalDepth: "10", WaterLevel: "3", InnerDiameter: "110"}

	doc := compose(t, c, testSite(), s)

	assert.Equal(t, "7.00 m", valueOf(doc, "Colonne d'eau"))
	assert.Equal(t, "66.52 L", valueOf(doc, "Volume d'eau"))
	assert.Equal(t, "199.57 L", valueOf(doc, "Trois volumes"))
	assert.Equal(t, "Pluvieux", valueOf(doc, "Météo"))
	assert.Equal(t, "Non", valueOf(doc, "Margelle"))
	assert.Contains(t, doc.Texts(), noMeasurements)
}

func TestComposeGroundwater_PartialWellInputs(t *testing.T) {
	c := New(nil, discardLogger())
	s := emptySurvey(t, domain.TypeGroundwater)
	stale := 12.0
	s.Specific.(*domain.GroundwaterData).Well = domain.WellCharacteristics{
		TotalDepth: "10", WaterLevel: "3", WaterColumnHeight: &stale, ThreeVolumes: &stale,
	}

	doc := compose(t, c, testSite(), s)

	assert.Equal(t, Placeholder, valueOf(doc, "Colonne d'eau"))
	assert.Equal(t, Placeholder, valueOf(doc, "Volume d'eau"))
	assert.Equal(t, Placeholder, valueOf(doc, "Trois volumes"))
}

func TestComposeGroundwater_Parameters(t *testing.T) {
	c := New(nil, discardLogger())
	s := emptySurvey(t, domain.TypeGroundwater)
	s.Specific.(*domain.GroundwaterData).Parameters.PH = domain.Triplet{Start: "7.1", End: "7.3"}

	doc := compose(t, c, testSite(), s)

	tables := doc.Tables()
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 10)
	ph := tables[0].Rows[5]
	assert.Equal(t, [][]string{{"pH"}, {"7.1"}, {Placeholder}, {"7.3"}}, ph.Cells)
	assert.NotContains(t, doc.Texts(), noMeasurements)
}

func TestComposeGroundwater_Photos(t *testing.T) {
	c := New(&stubLoader{}, discardLogger())
	s := emptySurvey(t, domain.TypeGroundwater)
	s.Specific.(*domain.GroundwaterData).Photos = []string{"pz1.jpg", " "}

	doc := compose(t, c, testSite(), s)

	texts := doc.Texts()
	assert.Contains(t, texts, "Documentation photographique")
	assert.Contains(t, texts, "Photo du prélèvement 1")
	assert.NotContains(t, texts, "Photo du prélèvement 2")
	require.Len(t, doc.Images(), 1)
	assert.Equal(t, "pz1.jpg", doc.Images()[0].Ref)
}

func TestComposeGas_FlowControl(t *testing.T) {
	c := New(nil, discardLogger())

	empty := compose(t, c, testSite(), emptySurvey(t, domain.TypeGas))
	assert.Contains(t, empty.Texts(), "Aucune mesure de débit renseignée")

	s := emptySurvey(t, domain.TypeGas)
	s.Common.Coordinates = &domain.Coordinates{X: "4.8357", Y: "45.764"}
	data := s.Specific.(*domain.GasData)
	data.SampleDescription = domain.GasSampleDescription{Name: "PZA1", StructureType: "permanent"}
	data.Sampling.SupportType = "charbon-actif"
	data.Purge.Flow = domain.FlowControl{FlowRates: domain.Triplet{Start: "0.2", Intermediate: "0.2", End: "0.19"}, AverageFlow: "0.2"}
	data.Purge.Measurements = domain.GasReadings{PID: "0.3", O2: "20.9"}

	doc := compose(t, c, testSite(), s)

	texts := doc.Texts()
	assert.NotContains(t, texts, "Aucune mesure de débit renseignée")
	assert.Equal(t, "PZA1", valueOf(doc, "Nom de l'ouvrage"))
	assert.Equal(t, "Permanent", valueOf(doc, "Type d'ouvrage"))
	assert.Equal(t, "Charbon actif", valueOf(doc, "Type de support"))
	assert.Equal(t, "4.8357", valueOf(doc, "Longitude"))
	assert.Equal(t, Placeholder, valueOf(doc, "Altitude"))
	assert.Equal(t, "0.2 l/min", valueOf(doc, "Débit moyen"))
	assert.Contains(t, texts, "20.9")
	assert.Contains(t, texts, "Substances à analyser :")
}

func TestComposeAmbientAir(t *testing.T) {
	c := New(nil, discardLogger())
	s := emptySurvey(t, domain.TypeAmbientAir)
	s.Common.SamplingName = "AA1"
	data := s.Specific.(*domain.AmbientAirData)
	data.Location.Room = "Bureau"
	data.Sampling.Ventilation = true
	data.Sampling.Type = "passive"

	doc := compose(t, c, testSite(), s)

	assert.Equal(t, "AA1", valueOf(doc, "Nom du prélèvement"))
	assert.Equal(t, "Bureau", valueOf(doc, "Pièce"))
	assert.Equal(t, "Oui", valueOf(doc, "Ventilation"))
	assert.Equal(t, "Passif", valueOf(doc, "Type"))
	assert.Contains(t, doc.Texts(), "Aucune mesure de débit renseignée")
}

func TestComposeSurfaceWater_Photos(t *testing.T) {
	loader := &stubLoader{fail: map[string]bool{"bad.jpg": true}}
	c := New(loader, discardLogger())
	s := emptySurvey(t, domain.TypeSurfaceWater)
	data := s.Specific.(*domain.SurfaceWaterData)
	data.Name = "ESU1"
	data.Station.WaterType = "river"
	data.FieldObservations.HasShade = true
	data.Photos = []string{"bad.jpg", "good.jpg"}

	doc := compose(t, c, testSite(), s)

	assert.Equal(t, "Rivière", valueOf(doc, "Type d'eau"))
	assert.Equal(t, "Oui", valueOf(doc, "Ombrage"))
	texts := doc.Texts()
	assert.Contains(t, texts, "Photo du prélèvement 1"+noPhoto)
	assert.Contains(t, texts, "Photo du prélèvement 2")
	require.Len(t, doc.Images(), 1)
	assert.Equal(t, "good.jpg", doc.Images()[0].Ref)
	assert.Contains(t, texts, noMeasurements)
}

func TestComposePID_Measurements(t *testing.T) {
	c := New(nil, discardLogger())

	empty := compose(t, c, testSite(), emptySurvey(t, domain.TypePID))
	tables := empty.Tables()
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, []string{noMeasurements}, tables[0].Rows[1].Cells[0])

	s := emptySurvey(t, domain.TypePID)
	s.Specific.(*domain.PIDData).Measurements = []domain.PIDMeasurement{
		{Location: "P1", GasReadings: domain.GasReadings{PID: "0.4"}},
		{Location: "P2"},
	}
	doc := compose(t, c, testSite(), s)

	rows := doc.Tables()[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"P1"}, rows[1].Cells[0])
	assert.Equal(t, []string{"0.4"}, rows[1].Cells[1])
	assert.Equal(t, []string{Placeholder}, rows[2].Cells[1])
	assert.Equal(t, "Campagne PID", valueOf(doc, "Campagne"))
}

func TestCompose_Logo(t *testing.T) {
	loader := &stubLoader{}
	c := New(loader, discardLogger(), WithLogo("branding/logo.png"))

	doc := compose(t, c, testSite(), emptySurvey(t, domain.TypePID))

	images := doc.Images()
	require.Len(t, images, 1)
	assert.Equal(t, layout.Image{X: 10, Y: 10, W: 30, H: 15, Ref: "branding/logo.png", Data: []byte("jpeg:branding/logo.png"), Format: "JPEG"}, images[0])
}

func TestCompose_LogoFailureKeepsTitle(t *testing.T) {
	loader := &stubLoader{fail: map[string]bool{"logo.png": true}}
	c := New(loader, discardLogger(), WithLogo("logo.png"))

	doc := compose(t, c, testSite(), emptySurvey(t, domain.TypeGroundwater))

	assert.Empty(t, doc.Images())
	assert.Contains(t, doc.Texts(), groundwaterTitle)
}

func TestComposeList(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	c := New(nil, discardLogger(), WithLocation(paris))
	site := testSite()
	site.Coordinates = &orb.Point{4.8357, 45.764}

	surveys := []domain.Survey{
		{Type: domain.TypeSoil, CreatedAt: time.Date(2024, 5, 13, 23, 30, 0, 0, time.UTC), Specific: &domain.SoilData{Name: "SC1"},
			Common: domain.CommonData{FieldTeam: []string{"L. Bernard", "A. Roux"}}},
		{Type: domain.TypePID, CreatedAt: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)},
		{Type: domain.TypeGroundwater, CreatedAt: time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC), Specific: &domain.GroundwaterData{}},
	}

	doc := c.ComposeList(context.Background(), site, surveys)

	require.Equal(t, 1, doc.PageCount())
	texts := doc.Texts()
	assert.Contains(t, texts, listTitle)
	assert.Contains(t, texts, "Site : Société Dupont")
	assert.Contains(t, texts, "Localisation : 12 rue des Lilas, Lyon")
	assert.Contains(t, texts, "N° de projet : AFF-2024-017")
	assert.Contains(t, texts, "Coordonnées : 45.764000, 4.835700")

	tables := doc.Tables()
	require.Len(t, tables, 1)
	tbl := tables[0]
	assert.InDelta(t, 60.0, tbl.Y, 1e-9)
	require.Len(t, tbl.Rows, 4)
	assert.Equal(t, [][]string{{"20/05/2024"}, {"Campagne PID"}, {"Campagne PID"}, {Placeholder}}, tbl.Rows[1].Cells)
	assert.Equal(t, [][]string{{"15/05/2024"}, {"Piézomètre sans nom"}, {"Eaux souterraines"}, {Placeholder}}, tbl.Rows[2].Cells)
	assert.Equal(t, [][]string{{"14/05/2024"}, {"SC1"}, {"Sol"}, {"L. Bernard, A. Roux"}}, tbl.Rows[3].Cells)

	// input order is untouched
	assert.Equal(t, domain.TypeSoil, surveys[0].Type)
}

func TestComposeList_Empty(t *testing.T) {
	c := New(nil, discardLogger())

	doc := c.ComposeList(context.Background(), domain.Site{}, nil)

	texts := doc.Texts()
	assert.Contains(t, texts, "Site : "+Placeholder)
	assert.Contains(t, cellTexts(doc), "Aucune fiche de terrain")
	assert.NotContains(t, strings.Join(texts, "|"), "Coordonnées")
}
