package httpadapter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/couchcryptid/field-survey-reports/internal/adapter/httpadapter"
	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/pipeline"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	surveyID = uuid.MustParse("5c2f6f4e-8c1a-4f57-9d36-1f0c3f2a9b10")
	siteID   = uuid.MustParse("0b8f7a62-3d4e-4c1b-a2f5-6e9d8c7b5a41")
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockExporter struct {
	result pipeline.Result
	err    error
	state  pipeline.State
	got    []domain.ExportTarget
}

func (m *mockExporter) ExportSurvey(_ context.Context, id uuid.UUID) (pipeline.Result, error) {
	m.got = append(m.got, domain.ExportTarget{Kind: domain.ExportSurvey, ID: id})
	return m.result, m.err
}

func (m *mockExporter) ExportSurveyList(_ context.Context, id uuid.UUID) (pipeline.Result, error) {
	m.got = append(m.got, domain.ExportTarget{Kind: domain.ExportSite, ID: id})
	return m.result, m.err
}

func (m *mockExporter) State(domain.ExportTarget) pipeline.State {
	if m.state == "" {
		return pipeline.StateIdle
	}
	return m.state
}

func newTestServer(exp *mockExporter, readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", exp, &mockReadiness{err: readyErr}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, srv http.Handler, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var body map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthzReturns200(t *testing.T) {
	rec, _ := do(t, newTestServer(&mockExporter{}, nil), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	rec, _ := do(t, newTestServer(&mockExporter{}, nil), http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, newTestServer(&mockExporter{}, fmt.Errorf("database unreachable")), http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockExporter{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestExportSurvey_Created(t *testing.T) {
	exp := &mockExporter{result: pipeline.Result{Output: domain.ExportOutput{
		Filename: "sondage-F1-2024-05-14-09-05.pdf",
		Location: "/exports/sondage-F1-2024-05-14-09-05.pdf",
		Pages:    3,
		Bytes:    48213,
	}}}

	rec, body := do(t, newTestServer(exp, nil), http.MethodPost, "/api/surveys/"+surveyID.String()+"/export")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "sondage-F1-2024-05-14-09-05.pdf", body["filename"])
	assert.InDelta(t, 3, body["pages"], 0)
	assert.Equal(t, []domain.ExportTarget{{Kind: domain.ExportSurvey, ID: surveyID}}, exp.got)
}

func TestExportSite_InFlight(t *testing.T) {
	exp := &mockExporter{result: pipeline.Result{Skipped: true}, state: pipeline.StateComposing}

	rec, body := do(t, newTestServer(exp, nil), http.MethodPost, "/api/sites/"+siteID.String()+"/export")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "composing", body["state"])
	assert.Equal(t, "site/"+siteID.String(), body["target"])
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name: "survey not found",
			path: "/api/surveys/" + surveyID.String() + "/export",
			err: &pipeline.ExportError{
				Target: domain.ExportTarget{Kind: domain.ExportSurvey, ID: surveyID}, Stage: pipeline.StageFetch,
				Message: pipeline.MessageSurvey, Err: domain.ErrNotFound,
			},
			wantCode: http.StatusNotFound,
			wantMsg:  pipeline.MessageSurvey,
		},
		{
			name: "list write failure",
			path: "/api/sites/" + siteID.String() + "/export",
			err: &pipeline.ExportError{
				Target: domain.ExportTarget{Kind: domain.ExportSite, ID: siteID}, Stage: pipeline.StageWrite,
				Message: pipeline.MessageList, Err: fmt.Errorf("disk full"),
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  pipeline.MessageList,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, newTestServer(&mockExporter{err: tt.err}, nil), http.MethodPost, tt.path)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestExport_InvalidID(t *testing.T) {
	exp := &mockExporter{}
	rec, body := do(t, newTestServer(exp, nil), http.MethodPost, "/api/surveys/not-a-uuid/export")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
	assert.Empty(t, exp.got)
}

func TestExport_WrongMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockExporter{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/surveys/"+surveyID.String()+"/export", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExportState(t *testing.T) {
	srv := newTestServer(&mockExporter{state: pipeline.StateFailed}, nil)

	rec, body := do(t, srv, http.MethodGet, "/api/exports/survey/"+surveyID.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "failed", body["state"])

	rec, _ = do(t, srv, http.MethodGet, "/api/exports/report/"+surveyID.String())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchema(t *testing.T) {
	srv := newTestServer(&mockExporter{}, nil)

	rec, body := do(t, srv, http.MethodGet, "/api/schema/groundwater")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "groundwater", body["type"])
	assert.Equal(t, domain.TypeGroundwater.Label(), body["label"])
	assert.NotEmpty(t, body["fields"])
	assert.NotEmpty(t, body["common"])

	rec, _ = do(t, srv, http.MethodGet, "/api/schema/seismic")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
