package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestSchemaCmd_OneType(t *testing.T) {
	out, err := runCmd(t, "schema", "groundwater")
	require.NoError(t, err)

	var doc schemaDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, domain.TypeGroundwater, doc.Type)
	assert.Equal(t, domain.TypeGroundwater.Label(), doc.Label)
	assert.NotEmpty(t, doc.Fields)
}

func TestSchemaCmd_AllTypes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSchema(&buf, nil))

	dec := yaml.NewDecoder(&buf)
	var types []domain.SurveyType
	for {
		var doc schemaDoc
		if err := dec.Decode(&doc); err != nil {
			break
		}
		types = append(types, doc.Type)
	}
	assert.Equal(t, append([]domain.SurveyType{"common"}, domain.SurveyTypes...), types)
}

func TestSchemaCmd_UnknownType(t *testing.T) {
	_, err := runCmd(t, "schema", "seismic")
	require.ErrorIs(t, err, domain.ErrUnknownSurveyType)
}

func TestExportCmd_InvalidID(t *testing.T) {
	_, err := runCmd(t, "export", "survey", "nope")
	require.ErrorContains(t, err, "invalid survey id")
}

type fakeSeeder struct {
	sites   []domain.Site
	surveys []domain.Survey
	failOn  string
}

func (f *fakeSeeder) CreateSite(_ context.Context, site domain.Site) (domain.Site, error) {
	if site.Name == f.failOn {
		return domain.Site{}, errors.New("duplicate key")
	}
	f.sites = append(f.sites, site)
	return site, nil
}

func (f *fakeSeeder) CreateSurvey(_ context.Context, survey domain.Survey) (domain.Survey, error) {
	f.surveys = append(f.surveys, survey)
	if survey.ID == uuid.Nil {
		survey.ID = uuid.New()
	}
	return survey, nil
}

const fixtureJSON = `{
  "sites": [
    {"id": "0b8f7a62-3d4e-4c1b-a2f5-6e9d8c7b5a41", "name": "Client A", "city": "Lyon", "project_number": "P-2024-01"}
  ],
  "surveys": [
    {
      "site_id": "0b8f7a62-3d4e-4c1b-a2f5-6e9d8c7b5a41",
      "type": "soil",
      "common_data": {"date": "2024-05-14"},
      "specific_data": {"name": "F1"}
    }
  ]
}`

func TestSeed(t *testing.T) {
	store := &fakeSeeder{}
	var out bytes.Buffer

	require.NoError(t, seed(context.Background(), store, strings.NewReader(fixtureJSON), &out))

	require.Len(t, store.sites, 1)
	assert.Equal(t, "P-2024-01", store.sites[0].ProjectNumber)
	require.Len(t, store.surveys, 1)
	assert.Equal(t, domain.TypeSoil, store.surveys[0].Type)
	assert.Equal(t, store.sites[0].ID, store.surveys[0].SiteID)
	assert.Equal(t, "F1", store.surveys[0].DisplayName())
	assert.Contains(t, out.String(), "seeded 1 sites, 1 surveys")
}

func TestSeed_Errors(t *testing.T) {
	err := seed(context.Background(), &fakeSeeder{}, strings.NewReader(`{"sites": [], "extra": 1}`), &bytes.Buffer{})
	require.ErrorContains(t, err, "decode fixtures")

	err = seed(context.Background(), &fakeSeeder{failOn: "Client A"}, strings.NewReader(fixtureJSON), &bytes.Buffer{})
	require.ErrorContains(t, err, "site 0 (Client A): duplicate key")

	bad := strings.Replace(fixtureJSON, `"type": "soil"`, `"type": "seismic"`, 1)
	err = seed(context.Background(), &fakeSeeder{}, strings.NewReader(bad), &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrUnknownSurveyType)
}

func TestSeed_FixtureFile(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "fixtures.json"))
	require.NoError(t, err)
	defer f.Close()

	store := &fakeSeeder{}
	require.NoError(t, seed(context.Background(), store, f, io.Discard))

	require.Len(t, store.sites, 1)
	require.NotNil(t, store.sites[0].Coordinates)
	assert.InDelta(t, 45.764, store.sites[0].Coordinates.Lat(), 1e-9)

	var names []string
	for _, s := range store.surveys {
		names = append(names, s.DisplayName())
	}
	assert.Equal(t, []string{"F1", "PZ1", "GS1", "AA1", "ESU1", "Campagne PID"}, names)
}
