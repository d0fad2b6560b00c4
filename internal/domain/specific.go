package domain

import (
	"encoding/json"
	"fmt"
)

// SpecificData is the type-specific payload of a survey. The set of
// implementations is closed: one per SurveyType.
type SpecificData interface {
	Type() SurveyType
	// SurveyName returns the name typed on the form, possibly empty.
	SurveyName() string
	// Accept dispatches to the visitor method matching the variant.
	Accept(v SpecificVisitor) error
}

// SpecificVisitor has one method per survey variant. Adding a variant adds a
// method here, so every dispatcher stops compiling until it handles it.
type SpecificVisitor interface {
	VisitSoil(*SoilData) error
	VisitGroundwater(*GroundwaterData) error
	VisitGas(*GasData) error
	VisitAmbientAir(*AmbientAirData) error
	VisitSurfaceWater(*SurfaceWaterData) error
	VisitPID(*PIDData) error
}

// NewSpecific returns an empty payload for the given type.
func NewSpecific(t SurveyType) (SpecificData, error) {
	switch t {
	case TypeSoil:
		return &SoilData{}, nil
	case TypeGroundwater:
		return &GroundwaterData{}, nil
	case TypeGas:
		return &GasData{}, nil
	case TypeAmbientAir:
		return &AmbientAirData{}, nil
	case TypeSurfaceWater:
		return &SurfaceWaterData{}, nil
	case TypePID:
		return &PIDData{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurveyType, t)
	}
}

// DecodeSpecific decodes a raw payload into the variant selected by t.
// Groundwater payloads have their derived well fields recomputed, so a
// stored value never outlives its inputs.
func DecodeSpecific(t SurveyType, raw json.RawMessage) (SpecificData, error) {
	specific, err := NewSpecific(t)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, specific); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
	}
	if gw, ok := specific.(*GroundwaterData); ok {
		gw.Well = Recompute(gw.Well)
	}
	return specific, nil
}

// Triplet is a reading taken at the start, middle and end of a time window.
type Triplet struct {
	Start        string `json:"start,omitempty"`
	Intermediate string `json:"intermediate,omitempty"`
	End          string `json:"end,omitempty"`
}

// IsEmpty reports whether none of the three readings was recorded.
func (t Triplet) IsEmpty() bool {
	return t.Start == "" && t.Intermediate == "" && t.End == ""
}

// SampleManagement describes how samples are packed and shipped.
type SampleManagement struct {
	Conditioning string `json:"conditioning,omitempty"`
	Transporter  string `json:"transporter,omitempty"`
	Laboratory   string `json:"laboratory,omitempty"`
	ShippingDate string `json:"shipping_date,omitempty"`
}

// WeatherBlock is the detailed weather record of gas, air and PID surveys.
type WeatherBlock struct {
	Description        string `json:"description,omitempty"`
	ExternalTemp       string `json:"external_temp,omitempty"`
	InternalTemp       string `json:"internal_temp,omitempty"`
	Pressure           string `json:"pressure,omitempty"`
	Humidity           string `json:"humidity,omitempty"`
	WindSpeedDirection string `json:"wind_speed_direction,omitempty"`
}

// GasReadings are the five sensor readings of a multi-gas meter.
type GasReadings struct {
	PID string `json:"pid,omitempty"`
	O2  string `json:"o2,omitempty"`
	H2S string `json:"h2s,omitempty"`
	CH4 string `json:"ch4,omitempty"`
	CO  string `json:"co,omitempty"`
}

// IsEmpty reports whether no reading was recorded.
func (g GasReadings) IsEmpty() bool {
	return g == GasReadings{}
}

// FlowControl records the pumping window of an active sample.
type FlowControl struct {
	StartTime   string  `json:"start_time,omitempty"`
	EndTime     string  `json:"end_time,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	FlowRates   Triplet `json:"flow_rates"`
	AverageFlow string  `json:"average_flow,omitempty"`
	TotalVolume string  `json:"total_volume,omitempty"`
}

// Laboratory describes the analysing laboratory and the shipment.
type Laboratory struct {
	Name                string `json:"name,omitempty"`
	Packaging           string `json:"packaging,omitempty"`
	Transporter         string `json:"transporter,omitempty"`
	DeliveryDate        string `json:"delivery_date,omitempty"`
	SubstancesToAnalyze string `json:"substances_to_analyze,omitempty"`
}
