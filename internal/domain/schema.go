package domain

import "fmt"

// FieldKind is the primitive kind of a schema field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindLongText FieldKind = "long_text"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindTime     FieldKind = "time"
	KindBool     FieldKind = "boolean"
	KindEnum     FieldKind = "enum"
	KindGroup    FieldKind = "group"
	KindRepeat   FieldKind = "repeat"
)

// Choice is one value of a closed-choice field.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field describes one named field of a survey payload. Keys match the JSON
// names of the payload structs.
type Field struct {
	Key      string    `json:"key" yaml:"key"`
	Label    string    `json:"label" yaml:"label"`
	Kind     FieldKind `json:"kind" yaml:"kind"`
	Unit     string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Derived  bool      `json:"derived,omitempty" yaml:"derived,omitempty"`
	Choices  []Choice  `json:"choices,omitempty" yaml:"choices,omitempty"`
	Fields   []Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// ChoiceLabel returns the label of value in choices, or value itself when
// it is not one of them.
func ChoiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// Closed-choice values.
var (
	WeatherChoices = []Choice{
		{"sunny", "Ensoleillé"}, {"cloudy", "Nuageux"}, {"windy", "Venteux"}, {"rainy", "Pluvieux"},
	}
	PurgeTypeChoices = []Choice{
		{"static", "Statique"}, {"dynamic", "Dynamique"},
	}
	GroundwaterLabChoices = []Choice{
		{"wessling", "Wessling"}, {"agrolab", "Agrolab"},
	}
	StructureTypeChoices = []Choice{
		{"temporary", "Temporaire"}, {"permanent", "Permanent"},
	}
	GasSamplingTypeChoices = []Choice{
		{"actif-pompe", "Actif (pompe)"}, {"actif-naturel", "Actif (naturel)"}, {"passif", "Passif"},
	}
	AirSamplingTypeChoices = []Choice{
		{"active-pump", "Actif (pompe)"}, {"active-natural", "Actif (naturel)"}, {"passive", "Passif"},
	}
	SupportTypeChoices = []Choice{
		{"xad2", "XAD-2"}, {"charbon-actif", "Charbon actif"}, {"hopkalite", "Hopcalite"},
		{"fluorisil", "Florisil"}, {"autre", "Autre"},
	}
	SoilToolChoices = []Choice{
		{"Carottier portatif", "Carottier portatif"}, {"Carottier manuel", "Carottier manuel"},
		{"Tarière mécanique", "Tarière mécanique"}, {"Tarière manuelle", "Tarière manuelle"},
		{"Pelle mécanique", "Pelle mécanique"}, {"Géoprobe", "Géoprobe"},
	}
	SurfaceSamplingTypeChoices = []Choice{
		{"shore", "Berge"}, {"upstream", "Amont"}, {"downstream", "Aval"}, {"other", "Autre"},
	}
	SurfaceEquipmentChoices = []Choice{
		{"bucket", "Seau"}, {"sampling-rod", "Canne de prélèvement"}, {"pump", "Pompe"},
	}
	WaterTypeChoices = []Choice{
		{"river", "Rivière"}, {"stream", "Ruisseau"}, {"brook", "Ru"}, {"lake", "Lac"}, {"pond", "Étang"},
	}
	EstimatedFlowChoices = []Choice{
		{"stagnant", "Stagnant"}, {"low", "Faible"}, {"high", "Fort"},
	}
	FlowTypeChoices = []Choice{
		{"laminar", "Laminaire"}, {"intermediate", "Intermédiaire"}, {"turbulent", "Turbulent"},
	}
	TurbidityChoices = []Choice{
		{"low", "Faible"}, {"medium", "Moyenne"}, {"high", "Forte"},
	}
)

// Schema returns the field descriptors of the payload of type t.
func Schema(t SurveyType) ([]Field, error) {
	switch t {
	case TypeSoil:
		return soilSchema(), nil
	case TypeGroundwater:
		return groundwaterSchema(), nil
	case TypeGas:
		return gasSchema(), nil
	case TypeAmbientAir:
		return ambientAirSchema(), nil
	case TypeSurfaceWater:
		return surfaceWaterSchema(), nil
	case TypePID:
		return pidSchema(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurveyType, t)
	}
}

// CommonSchema describes the fields shared by every survey type.
func CommonSchema() []Field {
	return []Field{
		date("date", "Date"),
		timeOfDay("time", "Heure"),
		text("weather_conditions", "Conditions météorologiques"),
		group("coordinates", "Coordonnées", text("x", "X"), text("y", "Y"), text("z", "Z")),
		text("sampling_name", "Nom du prélèvement"),
		repeat("field_team", "Équipe terrain", text("name", "Nom")),
	}
}

func text(key, label string) Field { return Field{Key: key, Label: label, Kind: KindText} }
func long(key, label string) Field { return Field{Key: key, Label: label, Kind: KindLongText} }
func date(key, label string) Field { return Field{Key: key, Label: label, Kind: KindDate} }
func boolean(key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindBool}
}
func timeOfDay(key, label string) Field { return Field{Key: key, Label: label, Kind: KindTime} }

func number(key, label, unit string) Field {
	return Field{Key: key, Label: label, Kind: KindNumber, Unit: unit}
}

func enum(key, label string, choices []Choice) Field {
	return Field{Key: key, Label: label, Kind: KindEnum, Choices: choices}
}

func group(key, label string, fields ...Field) Field {
	return Field{Key: key, Label: label, Kind: KindGroup, Fields: fields}
}

func repeat(key, label string, fields ...Field) Field {
	return Field{Key: key, Label: label, Kind: KindRepeat, Fields: fields}
}

func required(f Field) Field {
	f.Required = true
	return f
}

func derived(f Field) Field {
	f.Derived = true
	return f
}

func triplet(key, label, unit string) Field {
	kind := KindNumber
	if unit == "" {
		kind = KindText
	}
	return group(key, label,
		Field{Key: "start", Label: "Début", Kind: kind, Unit: unit},
		Field{Key: "intermediate", Label: "Intermédiaire", Kind: kind, Unit: unit},
		Field{Key: "end", Label: "Fin", Kind: kind, Unit: unit},
	)
}

func sampleManagement(labs []Choice) Field {
	lab := text("laboratory", "Laboratoire")
	if labs != nil {
		lab = enum("laboratory", "Laboratoire", labs)
	}
	return group("sample_management", "Gestion des échantillons",
		text("conditioning", "Conditionnement"),
		text("transporter", "Transporteur"),
		lab,
		date("shipping_date", "Date d'envoi"),
	)
}

func weatherBlock() Field {
	return group("weather_conditions", "Conditions météorologiques",
		text("description", "Description"),
		number("external_temp", "Température extérieure", "°C"),
		number("internal_temp", "Température intérieure", "°C"),
		number("pressure", "Pression atmosphérique", "hPa"),
		number("humidity", "Humidité", "%"),
		text("wind_speed_direction", "Vent (vitesse et direction)"),
	)
}

func gasReadings(key, label string) Field {
	return group(key, label, gasReadingFields()...)
}

func gasReadingFields() []Field {
	return []Field{
		number("pid", "PID", "ppmV"),
		number("o2", "O2", "%"),
		number("h2s", "H2S", "ppmV"),
		number("ch4", "CH4", "%"),
		number("co", "CO", "ppmV"),
	}
}

func flowControl() Field {
	return group("flow", "Contrôle du débit",
		timeOfDay("start_time", "Heure de début"),
		timeOfDay("end_time", "Heure de fin"),
		text("duration", "Durée"),
		triplet("flow_rates", "Débits", "l/min"),
		number("average_flow", "Débit moyen", "l/min"),
		number("total_volume", "Volume total", "l"),
	)
}

func laboratory() Field {
	return group("laboratory", "Laboratoire",
		text("name", "Laboratoire"),
		text("packaging", "Conditionnement"),
		text("transporter", "Transporteur"),
		date("delivery_date", "Date de livraison"),
		long("substances_to_analyze", "Substances à analyser"),
	)
}

func soilSchema() []Field {
	return []Field{
		required(text("name", "Nom du sondage")),
		group("coordinates", "Localisation", text("x", "X"), text("y", "Y"), text("z", "Z sol")),
		group("drilling_info", "Informations sur le sondage",
			enum("tool", "Outil de sondage", SoilToolChoices),
			number("diameter", "Diamètre sondage", "mm"),
			number("depth", "Profondeur atteinte", "m"),
			text("refection", "Rebouchage et réfection"),
			text("cuttings_management", "Gestion des déblais"),
			long("remarks", "Remarques / Revêtement"),
		),
		repeat("observations", "Observations",
			number("depth", "Profondeur", "m"),
			long("lithology", "Description lithologique"),
			text("water", "Eau"),
			text("organoleptic", "Organoleptiques"),
			number("pid", "PID", "ppm"),
			text("samples", "Échantillons"),
			repeat("photos", "Photos", text("ref", "Référence")),
		),
		repeat("main_photos", "Documentation photographique", text("ref", "Référence")),
		sampleManagement(nil),
	}
}

func groundwaterSchema() []Field {
	return []Field{
		required(text("name", "Nom de l'ouvrage")),
		group("location", "Localisation", text("x", "X"), text("y", "Y"), text("z", "Z")),
		group("general_info", "Informations générales",
			date("date", "Date"),
			timeOfDay("time", "Heure"),
			number("air_temp", "Température de l'air", "°C"),
			enum("weather", "Météo", WeatherChoices),
			text("well_type", "Type d'ouvrage"),
			text("usage", "Usage"),
			boolean("has_protective_cover", "Capot de protection"),
			boolean("has_curb", "Margelle"),
			boolean("has_tubing", "Tubage"),
			boolean("has_sealing", "Cimentation"),
		),
		number("pid_measurement", "Mesure PID en tête d'ouvrage", "ppm"),
		group("well_characteristics", "Caractéristiques de l'ouvrage",
			required(number("inner_diameter", "Diamètre intérieur", "mm")),
			number("outer_diameter", "Diamètre extérieur", "mm"),
			number("cover_height", "Hauteur du capot", "m"),
			required(number("total_depth", "Profondeur totale", "m")),
			number("screen_height", "Hauteur crépinée", "m"),
			required(number("water_level", "Niveau d'eau", "m")),
			derived(number("water_column_height", "Hauteur de la colonne d'eau", "m")),
			derived(number("total_water_volume", "Volume d'eau", "L")),
			derived(number("three_volumes", "Trois volumes", "L")),
			number("purging_rate", "Débit de purge", "m3/h"),
			text("pumping_time", "Temps de pompage"),
		),
		group("purge", "Purge",
			text("equipment", "Matériel de purge"),
			text("materials", "Matériaux"),
			enum("type", "Type de purge", PurgeTypeChoices),
			number("start_rate", "Débit début", "m3/h"),
			number("end_rate", "Débit fin", "m3/h"),
			number("pump_position", "Position de la pompe", "m"),
			number("drawdown", "Rabattement", "m"),
			group("treatment", "Traitement des eaux",
				boolean("activated_carbon", "Charbon actif"),
				text("other", "Autre"),
			),
			number("purge_volume", "Volume purgé", "L"),
		),
		group("sampling", "Prélèvement",
			text("equipment", "Matériel de prélèvement"),
			date("start_date", "Date de début"),
			text("duration", "Durée"),
			number("purge_level", "Niveau en fin de purge", "m"),
			number("pumping_rate", "Débit de pompage", "l/min"),
			number("pump_position", "Position de la pompe", "m"),
			boolean("equipment_cleaned", "Matériel nettoyé"),
		),
		group("parameters", "Paramètres physico-chimiques",
			triplet("time", "Heure", ""),
			triplet("water_level", "Niveau d'eau", "m"),
			triplet("turbidity", "Turbidité", "NTU"),
			triplet("conductivity", "Conductivité", "µS/cm"),
			triplet("ph", "pH", ""),
			triplet("dissolved_oxygen", "Oxygène dissous", "mg/l"),
			triplet("temperature", "Température", "°C"),
			triplet("remarks", "Remarques", ""),
			triplet("pid", "Valeur PID", "ppm"),
		),
		sampleManagement(GroundwaterLabChoices),
		repeat("photos", "Photos", text("ref", "Référence")),
	}
}

func gasSchema() []Field {
	return []Field{
		group("sample_description", "Description de l'ouvrage",
			enum("structure_type", "Type d'ouvrage", StructureTypeChoices),
			text("details", "Détails"),
			required(text("name", "Nom de l'ouvrage")),
		),
		weatherBlock(),
		group("sampling", "Description du prélèvement",
			enum("type", "Type de prélèvement", GasSamplingTypeChoices),
			number("support_count", "Nombre de supports", ""),
			enum("support_type", "Type de support", SupportTypeChoices),
			number("depth", "Profondeur", "m"),
			text("seal_type", "Type d'étanchéité"),
			long("soil_description", "Description des sols"),
		),
		group("purge", "Purge",
			long("details", "Détails"),
			gasReadings("measurements", "Mesures"),
			flowControl(),
		),
		laboratory(),
	}
}

func ambientAirSchema() []Field {
	return []Field{
		group("location", "Localisation",
			text("room", "Pièce"),
			text("position", "Position"),
			text("latitude", "Latitude"),
			text("longitude", "Longitude"),
		),
		weatherBlock(),
		group("sampling", "Description du prélèvement",
			enum("type", "Type de prélèvement", AirSamplingTypeChoices),
			number("support_count", "Nombre de supports", ""),
			enum("support_type", "Type de support", SupportTypeChoices),
			long("installation_description", "Description de l'installation"),
			number("height", "Hauteur", "m"),
			boolean("ventilation", "Ventilation"),
			text("recent_work", "Travaux récents"),
			text("heating", "Chauffage"),
			long("interfering_sources", "Sources interférentes"),
			long("interfering_activities", "Activités interférentes"),
		),
		gasReadings("measurements", "Mesures"),
		flowControl(),
		laboratory(),
	}
}

func surfaceWaterSchema() []Field {
	return []Field{
		required(text("name", "Nom du prélèvement")),
		group("general_info", "Informations générales",
			date("date", "Date"),
			timeOfDay("time", "Heure"),
			number("air_temperature", "Température de l'air", "°C"),
			text("weather_condition", "Conditions météorologiques"),
		),
		group("location", "Localisation", text("x", "X"), text("y", "Y"), text("z", "Z")),
		group("sampling", "Conditions de prélèvement",
			enum("type", "Type de prélèvement", SurfaceSamplingTypeChoices),
			enum("equipment", "Matériel", SurfaceEquipmentChoices),
			number("depth", "Profondeur", "m"),
		),
		group("station_description", "Description de la station",
			long("description", "Description"),
			enum("water_type", "Type d'eau", WaterTypeChoices),
			enum("estimated_flow", "Débit estimé", EstimatedFlowChoices),
			enum("flow_type", "Type d'écoulement", FlowTypeChoices),
			long("observations", "Observations"),
		),
		group("field_observations", "Observations de terrain",
			enum("turbidity", "Turbidité", TurbidityChoices),
			text("water_color", "Couleur de l'eau"),
			boolean("has_leaves_moss", "Feuilles / mousses"),
			boolean("has_floating", "Éléments flottants"),
			text("water_odor", "Odeur"),
			boolean("has_shade", "Ombrage"),
		),
		group("parameters", "Paramètres in situ",
			triplet("time", "Heure", ""),
			triplet("temperature", "Température", "°C"),
			triplet("conductivity", "Conductivité", "µS/cm"),
			triplet("ph", "pH", ""),
			triplet("redox", "Potentiel redox", "mV"),
			triplet("remarks", "Remarques", ""),
		),
		sampleManagement(nil),
		repeat("photos", "Photos", text("ref", "Référence")),
	}
}

func pidSchema() []Field {
	return []Field{
		group("structure_description", "Description de l'ouvrage",
			enum("type", "Type d'ouvrage", StructureTypeChoices),
			text("details", "Détails"),
		),
		weatherBlock(),
		repeat("measurements", "Mesures",
			append([]Field{text("location", "Localisation")}, gasReadingFields()...)...,
		),
	}
}
