package pipeline

import (
	"fmt"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

// Stage names the step an export failed in.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageCompose Stage = "compose"
	StageWrite   Stage = "write"
)

// User-facing failure messages, one per export kind.
const (
	MessageSurvey = "Une erreur est survenue lors de la génération du PDF. Veuillez réessayer."
	MessageList   = "Une erreur est survenue lors de l'exportation des fiches. Veuillez réessayer."
)

// ExportError is the single error an export returns. Message is safe to show
// to users; Err keeps the cause for logs and errors.Is.
type ExportError struct {
	Target  domain.ExportTarget
	Stage   Stage
	Message string
	Err     error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %s: %v", e.Target, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func messageFor(kind domain.ExportKind) string {
	if kind == domain.ExportSite {
		return MessageList
	}
	return MessageSurvey
}
