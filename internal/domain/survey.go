package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by record stores when a site or survey does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownSurveyType is returned when a type tag is outside the closed enumeration.
	ErrUnknownSurveyType = errors.New("unknown survey type")
	// ErrShapeMismatch is returned when specific data does not match the survey's type tag.
	ErrShapeMismatch = errors.New("specific data does not match survey type")
	// ErrTypeImmutable is returned when an update tries to change a survey's type tag.
	ErrTypeImmutable = errors.New("survey type cannot change")
)

// SurveyType is the type tag of a survey.
type SurveyType string

const (
	TypeSoil         SurveyType = "soil"
	TypeGroundwater  SurveyType = "groundwater"
	TypeGas          SurveyType = "gas"
	TypeAmbientAir   SurveyType = "ambient_air"
	TypeSurfaceWater SurveyType = "surface_water"
	TypePID          SurveyType = "pid"
)

// SurveyTypes lists every type tag in display order.
var SurveyTypes = []SurveyType{TypeSoil, TypeGroundwater, TypeGas, TypeAmbientAir, TypeSurfaceWater, TypePID}

var knownTypes = mapset.NewThreadUnsafeSet(SurveyTypes...)

// ParseSurveyType validates a raw type tag.
func ParseSurveyType(s string) (SurveyType, error) {
	t := SurveyType(strings.TrimSpace(s))
	if !knownTypes.Contains(t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSurveyType, s)
	}
	return t, nil
}

// Label returns the French label used in reports and list exports.
func (t SurveyType) Label() string {
	switch t {
	case TypeSoil:
		return "Sol"
	case TypeGroundwater:
		return "Eaux souterraines"
	case TypeGas:
		return "Gaz du sol"
	case TypeAmbientAir:
		return "Air ambiant"
	case TypeSurfaceWater:
		return "Eaux superficielles"
	case TypePID:
		return "Campagne PID"
	default:
		return string(t)
	}
}

// FilePrefix is the leading component of a single-survey export filename.
func (t SurveyType) FilePrefix() string {
	switch t {
	case TypeSoil:
		return "sondage"
	case TypeGroundwater:
		return "piezometre"
	case TypeGas:
		return "gaz-du-sol"
	case TypeAmbientAir:
		return "air-ambiant"
	case TypeSurfaceWater:
		return "eaux-superficielles"
	case TypePID:
		return "campagne-pid"
	default:
		return "fiche"
	}
}

// Coordinates is a free-form coordinate triple as typed in the field.
// Gas and PID surveys store longitude, latitude and altitude in X, Y and Z.
type Coordinates struct {
	X string `json:"x,omitempty"`
	Y string `json:"y,omitempty"`
	Z string `json:"z,omitempty"`
}

// CommonData holds the fields shared by every survey type.
type CommonData struct {
	Date              string       `json:"date,omitempty"`
	Time              string       `json:"time,omitempty"`
	WeatherConditions string       `json:"weather_conditions,omitempty"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	SamplingName      string       `json:"sampling_name,omitempty"`
	FieldTeam         []string     `json:"field_team,omitempty"`
}

// Survey is a field survey attached to a site.
type Survey struct {
	ID        uuid.UUID
	SiteID    uuid.UUID
	Type      SurveyType
	CreatedAt time.Time
	CreatedBy uuid.UUID
	Common    CommonData
	Specific  SpecificData
}

// Validate checks that the specific payload matches the type tag.
func (s Survey) Validate() error {
	if !knownTypes.Contains(s.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownSurveyType, s.Type)
	}
	if s.Specific == nil {
		return fmt.Errorf("%w: missing payload for %s", ErrShapeMismatch, s.Type)
	}
	if s.Specific.Type() != s.Type {
		return fmt.Errorf("%w: %s payload on %s survey", ErrShapeMismatch, s.Specific.Type(), s.Type)
	}
	return nil
}

// ApplyUpdate replaces the editable data of s with that of next.
// The type tag, identity, site and creation metadata are kept.
func (s Survey) ApplyUpdate(next Survey) (Survey, error) {
	if next.Type != "" && next.Type != s.Type {
		return s, fmt.Errorf("%w: %s -> %s", ErrTypeImmutable, s.Type, next.Type)
	}
	next.ID = s.ID
	next.SiteID = s.SiteID
	next.Type = s.Type
	next.CreatedAt = s.CreatedAt
	next.CreatedBy = s.CreatedBy
	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}

// DisplayName is the human-readable name used in list exports and filenames.
func (s Survey) DisplayName() string {
	name := ""
	if s.Specific != nil {
		name = strings.TrimSpace(s.Specific.SurveyName())
	}
	if name == "" && s.Type != TypePID && s.Type != TypeGroundwater {
		name = strings.TrimSpace(s.Common.SamplingName)
	}
	if name != "" {
		return name
	}
	switch s.Type {
	case TypeSoil:
		return "Sondage"
	case TypeGroundwater:
		return "Piézomètre sans nom"
	case TypeGas:
		return "Ouvrage sans nom"
	case TypePID:
		return "Campagne PID"
	default:
		return "Prélèvement sans nom"
	}
}

// surveyJSON is the wire shape of a survey. Specific data stays raw until
// the type tag is known.
type surveyJSON struct {
	ID           uuid.UUID       `json:"id"`
	SiteID       uuid.UUID       `json:"site_id"`
	Type         SurveyType      `json:"type"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    uuid.UUID       `json:"created_by"`
	CommonData   CommonData      `json:"common_data"`
	SpecificData json.RawMessage `json:"specific_data,omitempty"`
}

// MarshalJSON encodes the survey with its specific payload under "specific_data".
func (s Survey) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if s.Specific != nil {
		b, err := json.Marshal(s.Specific)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", s.Type, err)
		}
		raw = b
	}
	return json.Marshal(surveyJSON{
		ID:           s.ID,
		SiteID:       s.SiteID,
		Type:         s.Type,
		CreatedAt:    s.CreatedAt,
		CreatedBy:    s.CreatedBy,
		CommonData:   s.Common,
		SpecificData: raw,
	})
}

// UnmarshalJSON decodes the specific payload into the variant selected by "type".
func (s *Survey) UnmarshalJSON(data []byte) error {
	var w surveyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode survey: %w", err)
	}
	specific, err := DecodeSpecific(w.Type, w.SpecificData)
	if err != nil {
		return err
	}
	*s = Survey{
		ID:        w.ID,
		SiteID:    w.SiteID,
		Type:      w.Type,
		CreatedAt: w.CreatedAt,
		CreatedBy: w.CreatedBy,
		Common:    w.CommonData,
		Specific:  specific,
	}
	return nil
}
