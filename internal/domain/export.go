package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportKind distinguishes single-survey reports from site list exports.
type ExportKind string

const (
	ExportSurvey ExportKind = "survey"
	ExportSite   ExportKind = "site"
)

// ParseExportKind accepts the kinds used in URLs and CLI arguments.
func ParseExportKind(s string) (ExportKind, error) {
	switch k := ExportKind(s); k {
	case ExportSurvey, ExportSite:
		return k, nil
	default:
		return "", fmt.Errorf("unknown export kind %q", s)
	}
}

// ExportTarget identifies what an export is about. At most one export per
// target runs at a time.
type ExportTarget struct {
	Kind ExportKind
	ID   uuid.UUID
}

func (t ExportTarget) String() string {
	return string(t.Kind) + "/" + t.ID.String()
}

// ExportOutput describes a persisted report.
type ExportOutput struct {
	Filename string `json:"filename"`
	Location string `json:"location"`
	Pages    int    `json:"pages"`
	Bytes    int64  `json:"bytes"`
}

// ExportEvent announces a completed export to downstream consumers.
type ExportEvent struct {
	Target     string     `json:"target"`
	Kind       ExportKind `json:"kind"`
	SurveyType SurveyType `json:"survey_type,omitempty"`
	Filename   string     `json:"filename"`
	Location   string     `json:"location"`
	Pages      int        `json:"pages"`
	ExportedAt time.Time  `json:"exported_at"`
}
