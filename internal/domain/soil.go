package domain

// SoilData is the payload of a soil boring survey.
type SoilData struct {
	Name             string            `json:"name,omitempty"`
	Coordinates      Coordinates       `json:"coordinates"`
	DrillingInfo     DrillingInfo      `json:"drilling_info"`
	Observations     []SoilObservation `json:"observations,omitempty"`
	MainPhotos       []string          `json:"main_photos,omitempty"`
	SampleManagement SampleManagement  `json:"sample_management"`
}

// DrillingInfo describes how the boring was drilled and closed.
type DrillingInfo struct {
	Tool               string `json:"tool,omitempty"`
	Diameter           string `json:"diameter,omitempty"`
	Depth              string `json:"depth,omitempty"`
	Refection          string `json:"refection,omitempty"`
	CuttingsManagement string `json:"cuttings_management,omitempty"`
	Remarks            string `json:"remarks,omitempty"`
}

// SoilObservation is one stratigraphy row of a boring log.
type SoilObservation struct {
	Depth        string   `json:"depth,omitempty"`
	Lithology    string   `json:"lithology,omitempty"`
	Water        string   `json:"water,omitempty"`
	Organoleptic string   `json:"organoleptic,omitempty"`
	PID          string   `json:"pid,omitempty"`
	Samples      string   `json:"samples,omitempty"`
	Photos       []string `json:"photos,omitempty"`
}

func (*SoilData) Type() SurveyType                 { return TypeSoil }
func (d *SoilData) SurveyName() string             { return d.Name }
func (d *SoilData) Accept(v SpecificVisitor) error { return v.VisitSoil(d) }
