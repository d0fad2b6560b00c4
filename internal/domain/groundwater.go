package domain

// GroundwaterData is the payload of a groundwater well sampling survey.
type GroundwaterData struct {
	Name             string                `json:"name,omitempty"`
	Location         Coordinates           `json:"location"`
	GeneralInfo      GroundwaterGeneral    `json:"general_info"`
	PIDMeasurement   string                `json:"pid_measurement,omitempty"`
	Well             WellCharacteristics   `json:"well_characteristics"`
	Purge            Purge                 `json:"purge"`
	Sampling         GroundwaterSampling   `json:"sampling"`
	Parameters       GroundwaterParameters `json:"parameters"`
	SampleManagement SampleManagement      `json:"sample_management"`
	Photos           []string              `json:"photos,omitempty"`
}

// GroundwaterGeneral holds the visit conditions and the well head state.
type GroundwaterGeneral struct {
	Date               string `json:"date,omitempty"`
	Time               string `json:"time,omitempty"`
	AirTemp            string `json:"air_temp,omitempty"`
	Weather            string `json:"weather,omitempty"`
	WellType           string `json:"well_type,omitempty"`
	Usage              string `json:"usage,omitempty"`
	HasProtectiveCover bool   `json:"has_protective_cover"`
	HasCurb            bool   `json:"has_curb"`
	HasTubing          bool   `json:"has_tubing"`
	HasSealing         bool   `json:"has_sealing"`
}

// WellCharacteristics are the well geometry measurements. WaterColumnHeight,
// TotalWaterVolume and ThreeVolumes are derived; see Recompute.
type WellCharacteristics struct {
	InnerDiameter     string   `json:"inner_diameter,omitempty"` // mm
	OuterDiameter     string   `json:"outer_diameter,omitempty"` // mm
	CoverHeight       string   `json:"cover_height,omitempty"`   // m
	TotalDepth        string   `json:"total_depth,omitempty"`    // m
	ScreenHeight      string   `json:"screen_height,omitempty"`  // m
	WaterLevel        string   `json:"water_level,omitempty"`    // m
	PurgingRate       string   `json:"purging_rate,omitempty"`   // m3/h
	PumpingTime       string   `json:"pumping_time,omitempty"`
	WaterColumnHeight *float64 `json:"water_column_height,omitempty"` // m
	TotalWaterVolume  *float64 `json:"total_water_volume,omitempty"`  // L
	ThreeVolumes      *float64 `json:"three_volumes,omitempty"`       // L
}

// Purge describes the purge performed before sampling.
type Purge struct {
	Equipment    string         `json:"equipment,omitempty"`
	Materials    string         `json:"materials,omitempty"`
	Type         string         `json:"type,omitempty"`
	StartRate    string         `json:"start_rate,omitempty"`
	EndRate      string         `json:"end_rate,omitempty"`
	PumpPosition string         `json:"pump_position,omitempty"`
	Drawdown     string         `json:"drawdown,omitempty"`
	Treatment    PurgeTreatment `json:"treatment"`
	PurgeVolume  string         `json:"purge_volume,omitempty"`
}

// PurgeTreatment records how purge water was treated.
type PurgeTreatment struct {
	ActivatedCarbon bool   `json:"activated_carbon"`
	Other           string `json:"other,omitempty"`
}

// GroundwaterSampling describes the sample collection itself.
type GroundwaterSampling struct {
	Equipment        string `json:"equipment,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	Duration         string `json:"duration,omitempty"`
	PurgeLevel       string `json:"purge_level,omitempty"`
	PumpingRate      string `json:"pumping_rate,omitempty"`
	PumpPosition     string `json:"pump_position,omitempty"`
	EquipmentCleaned bool   `json:"equipment_cleaned"`
}

// GroundwaterParameters are the field parameters monitored during the purge.
type GroundwaterParameters struct {
	Time            Triplet `json:"time"`
	WaterLevel      Triplet `json:"water_level"`
	Turbidity       Triplet `json:"turbidity"`
	Conductivity    Triplet `json:"conductivity"`
	PH              Triplet `json:"ph"`
	DissolvedOxygen Triplet `json:"dissolved_oxygen"`
	Temperature     Triplet `json:"temperature"`
	Remarks         Triplet `json:"remarks"`
	PID             Triplet `json:"pid"`
}

// Rows returns the parameters in report order with their labels.
func (p GroundwaterParameters) Rows() []LabeledTriplet {
	return []LabeledTriplet{
		{Label: "Heure", Triplet: p.Time},
		{Label: "Niveau d'eau (m)", Triplet: p.WaterLevel},
		{Label: "Turbidité (NTU)", Triplet: p.Turbidity},
		{Label: "Conductivité (µS/cm)", Triplet: p.Conductivity},
		{Label: "pH", Triplet: p.PH},
		{Label: "Oxygène dissous (mg/l)", Triplet: p.DissolvedOxygen},
		{Label: "Température (°C)", Triplet: p.Temperature},
		{Label: "Remarques", Triplet: p.Remarks},
		{Label: "Valeur PID (ppm)", Triplet: p.PID},
	}
}

// LabeledTriplet pairs a triplet with its report label.
type LabeledTriplet struct {
	Label string
	Triplet
}

func (*GroundwaterData) Type() SurveyType                 { return TypeGroundwater }
func (d *GroundwaterData) SurveyName() string             { return d.Name }
func (d *GroundwaterData) Accept(v SpecificVisitor) error { return v.VisitGroundwater(d) }
