package domain

// SurfaceWaterData is the payload of a river, stream or pond sampling survey.
type SurfaceWaterData struct {
	Name              string                 `json:"name,omitempty"`
	GeneralInfo       SurfaceWaterGeneral    `json:"general_info"`
	Location          Coordinates            `json:"location"`
	Sampling          SurfaceWaterSampling   `json:"sampling"`
	Station           StationDescription     `json:"station_description"`
	FieldObservations FieldObservations      `json:"field_observations"`
	Parameters        SurfaceWaterParameters `json:"parameters"`
	SampleManagement  SampleManagement       `json:"sample_management"`
	Photos            []string               `json:"photos,omitempty"`
}

// SurfaceWaterGeneral holds the visit conditions.
type SurfaceWaterGeneral struct {
	Date             string `json:"date,omitempty"`
	Time             string `json:"time,omitempty"`
	AirTemperature   string `json:"air_temperature,omitempty"`
	WeatherCondition string `json:"weather_condition,omitempty"`
}

// SurfaceWaterSampling describes where and how the water was taken.
type SurfaceWaterSampling struct {
	Type      string `json:"type,omitempty"`
	Equipment string `json:"equipment,omitempty"`
	Depth     string `json:"depth,omitempty"`
}

// StationDescription characterises the water body at the station.
type StationDescription struct {
	Description   string `json:"description,omitempty"`
	WaterType     string `json:"water_type,omitempty"`
	EstimatedFlow string `json:"estimated_flow,omitempty"`
	FlowType      string `json:"flow_type,omitempty"`
	Observations  string `json:"observations,omitempty"`
}

// FieldObservations are the visual checks made on site.
type FieldObservations struct {
	Turbidity     string `json:"turbidity,omitempty"`
	WaterColor    string `json:"water_color,omitempty"`
	HasLeavesMoss bool   `json:"has_leaves_moss"`
	HasFloating   bool   `json:"has_floating"`
	WaterOdor     string `json:"water_odor,omitempty"`
	HasShade      bool   `json:"has_shade"`
}

// SurfaceWaterParameters are the in-situ measurements.
type SurfaceWaterParameters struct {
	Time         Triplet `json:"time"`
	Temperature  Triplet `json:"temperature"`
	Conductivity Triplet `json:"conductivity"`
	PH           Triplet `json:"ph"`
	Redox        Triplet `json:"redox"`
	Remarks      Triplet `json:"remarks"`
}

// Rows returns the parameters in report order with their labels.
func (p SurfaceWaterParameters) Rows() []LabeledTriplet {
	return []LabeledTriplet{
		{Label: "Heure", Triplet: p.Time},
		{Label: "Température (°C)", Triplet: p.Temperature},
		{Label: "Conductivité (µS/cm)", Triplet: p.Conductivity},
		{Label: "pH", Triplet: p.PH},
		{Label: "Potentiel redox (mV)", Triplet: p.Redox},
		{Label: "Remarques", Triplet: p.Remarks},
	}
}

func (*SurfaceWaterData) Type() SurveyType                 { return TypeSurfaceWater }
func (d *SurfaceWaterData) SurveyName() string             { return d.Name }
func (d *SurfaceWaterData) Accept(v SpecificVisitor) error { return v.VisitSurfaceWater(d) }
