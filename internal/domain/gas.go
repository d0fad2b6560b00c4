package domain

// GasData is the payload of a soil gas sampling survey. Coordinates live in
// CommonData as longitude (X), latitude (Y) and altitude (Z).
type GasData struct {
	SampleDescription GasSampleDescription `json:"sample_description"`
	Weather           WeatherBlock         `json:"weather_conditions"`
	Sampling          GasSampling          `json:"sampling"`
	Purge             GasPurge             `json:"purge"`
	Laboratory        Laboratory           `json:"laboratory"`
}

// GasSampleDescription identifies the sampling structure.
type GasSampleDescription struct {
	StructureType string `json:"structure_type,omitempty"`
	Details       string `json:"details,omitempty"`
	Name          string `json:"name,omitempty"`
}

// GasSampling describes the sampling set-up.
type GasSampling struct {
	Type            string `json:"type,omitempty"`
	SupportCount    string `json:"support_count,omitempty"`
	SupportType     string `json:"support_type,omitempty"`
	Depth           string `json:"depth,omitempty"`
	SealType        string `json:"seal_type,omitempty"`
	SoilDescription string `json:"soil_description,omitempty"`
}

// GasPurge records readings taken during purge and the pumping window.
type GasPurge struct {
	Details      string      `json:"details,omitempty"`
	Measurements GasReadings `json:"measurements"`
	Flow         FlowControl `json:"flow"`
}

func (*GasData) Type() SurveyType                 { return TypeGas }
func (d *GasData) SurveyName() string             { return d.SampleDescription.Name }
func (d *GasData) Accept(v SpecificVisitor) error { return v.VisitGas(d) }

// AmbientAirData is the payload of an indoor or outdoor ambient air survey.
type AmbientAirData struct {
	Location     AirLocation  `json:"location"`
	Weather      WeatherBlock `json:"weather_conditions"`
	Sampling     AirSampling  `json:"sampling"`
	Measurements GasReadings  `json:"measurements"`
	Flow         FlowControl  `json:"flow"`
	Laboratory   Laboratory   `json:"laboratory"`
}

// AirLocation places the sampler inside a building.
type AirLocation struct {
	Room      string `json:"room,omitempty"`
	Position  string `json:"position,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// AirSampling describes the sampler and its environment.
type AirSampling struct {
	Type                    string `json:"type,omitempty"`
	SupportCount            string `json:"support_count,omitempty"`
	SupportType             string `json:"support_type,omitempty"`
	InstallationDescription string `json:"installation_description,omitempty"`
	Height                  string `json:"height,omitempty"`
	Ventilation             bool   `json:"ventilation"`
	RecentWork              string `json:"recent_work,omitempty"`
	Heating                 string `json:"heating,omitempty"`
	InterferingSources      string `json:"interfering_sources,omitempty"`
	InterferingActivities   string `json:"interfering_activities,omitempty"`
}

// Ambient air surveys carry no name of their own; the sampling name in
// CommonData is used instead.
func (*AmbientAirData) Type() SurveyType                 { return TypeAmbientAir }
func (*AmbientAirData) SurveyName() string               { return "" }
func (d *AmbientAirData) Accept(v SpecificVisitor) error { return v.VisitAmbientAir(d) }

// PIDData is the payload of a semi-quantitative soil gas sweep.
type PIDData struct {
	Structure    PIDStructure     `json:"structure_description"`
	Weather      WeatherBlock     `json:"weather_conditions"`
	Measurements []PIDMeasurement `json:"measurements,omitempty"`
}

// PIDStructure describes the probes used for the sweep.
type PIDStructure struct {
	Type    string `json:"type,omitempty"`
	Details string `json:"details,omitempty"`
}

// PIDMeasurement is one probe location and its five readings.
type PIDMeasurement struct {
	Location string `json:"location,omitempty"`
	GasReadings
}

func (*PIDData) Type() SurveyType                 { return TypePID }
func (*PIDData) SurveyName() string               { return "" }
func (d *PIDData) Accept(v SpecificVisitor) error { return v.VisitPID(d) }
