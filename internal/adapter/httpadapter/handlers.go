package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/couchcryptid/field-survey-reports/internal/pipeline"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Exporter is the part of pipeline.Exporter the API drives.
type Exporter interface {
	ExportSurvey(ctx context.Context, id uuid.UUID) (pipeline.Result, error)
	ExportSurveyList(ctx context.Context, siteID uuid.UUID) (pipeline.Result, error)
	State(target domain.ExportTarget) pipeline.State
}

const msgInvalidID = "Identifiant invalide."

type handlers struct {
	exporter Exporter
	logger   *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

type stateResponse struct {
	Target string         `json:"target"`
	State  pipeline.State `json:"state"`
}

type schemaResponse struct {
	Type   domain.SurveyType `json:"type"`
	Label  string            `json:"label"`
	Common []domain.Field    `json:"common"`
	Fields []domain.Field    `json:"fields"`
}

func (h *handlers) exportSurvey(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.exporter.ExportSurvey(r.Context(), id)
	h.writeExport(w, domain.ExportTarget{Kind: domain.ExportSurvey, ID: id}, res, err)
}

func (h *handlers) exportSite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.exporter.ExportSurveyList(r.Context(), id)
	h.writeExport(w, domain.ExportTarget{Kind: domain.ExportSite, ID: id}, res, err)
}

func (h *handlers) writeExport(w http.ResponseWriter, target domain.ExportTarget, res pipeline.Result, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		msg := err.Error()
		var exportErr *pipeline.ExportError
		if errors.As(err, &exportErr) {
			msg = exportErr.Message
		}
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}
	if res.Skipped {
		writeJSON(w, http.StatusAccepted, stateResponse{Target: target.String(), State: h.exporter.State(target)})
		return
	}
	writeJSON(w, http.StatusCreated, res.Output)
}

func (h *handlers) exportState(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseExportKind(mux.Vars(r)["kind"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	target := domain.ExportTarget{Kind: kind, ID: id}
	writeJSON(w, http.StatusOK, stateResponse{Target: target.String(), State: h.exporter.State(target)})
}

func (h *handlers) schema(w http.ResponseWriter, r *http.Request) {
	t, err := domain.ParseSurveyType(mux.Vars(r)["type"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	fields, err := domain.Schema(t)
	if err != nil {
		h.logger.Error("schema lookup failed", "type", t, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, schemaResponse{Type: t, Label: t.Label(), Common: domain.CommonSchema(), Fields: fields})
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidID})
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
