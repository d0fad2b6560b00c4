package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
)

// Placeholder is printed for every field that was left empty.
const Placeholder = "Non renseigné"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
}

// RenderField returns the printable form of a field value: the trimmed value,
// or Placeholder when it is empty.
func RenderField(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return Placeholder
	}
	return v
}

// renderUnit appends a unit to a provided value. Placeholders get no unit.
func renderUnit(value, unit string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return Placeholder
	}
	return v + " " + unit
}

func renderBool(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}

func renderChoice(choices []domain.Choice, value string) string {
	return RenderField(domain.ChoiceLabel(choices, strings.TrimSpace(value)))
}

// renderDerived prints a derived quantity with a fixed number of decimals.
func renderDerived(v *float64, decimals int, unit string) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64) + " " + unit
}

func renderList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			kept = append(kept, s)
		}
	}
	return RenderField(strings.Join(kept, ", "))
}

// parseDate accepts the date formats produced by the field forms.
func parseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// renderDate prints a date as dd/MM/yyyy. Values that are not a known date
// format are printed as typed.
func renderDate(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	if t, ok := parseDate(value); ok {
		return t.Format("02/01/2006")
	}
	return RenderField(value)
}

// renderTime prints the explicit time, or the time part of a date-time.
func renderTime(timeValue, dateValue string) string {
	if strings.TrimSpace(timeValue) != "" {
		return RenderField(timeValue)
	}
	if i := strings.IndexByte(dateValue, 'T'); i >= 0 {
		if t, ok := parseDate(dateValue); ok {
			return t.Format("15:04")
		}
	}
	return Placeholder
}

// splitWeather splits the soil weather summary "<description> - <temp>"
// into its two parts.
func splitWeather(summary string) (description, temperature string) {
	parts := strings.SplitN(summary, " - ", 2)
	description = RenderField(parts[0])
	temperature = Placeholder
	if len(parts) == 2 {
		temperature = RenderField(parts[1])
	}
	return description, temperature
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
