// Package domain models environmental field surveys and the sites they
// belong to.
//
// # Survey Types
//
// A survey carries a type tag from a closed set and a payload whose shape is
// fixed by that tag:
//
//	soil           boring log with stratigraphy rows and photos  -> SoilData
//	groundwater    well purge and sampling                        -> GroundwaterData
//	gas            soil gas sampling                              -> GasData
//	ambient_air    indoor or outdoor air sampling                 -> AmbientAirData
//	surface_water  river, stream or pond sampling                 -> SurfaceWaterData
//	pid            semi-quantitative soil gas sweep               -> PIDData
//
// The tag never changes after creation; [Survey.ApplyUpdate] rejects it.
// Code that needs per-type behaviour implements [SpecificVisitor].
//
// # Field Values
//
// Values are kept as typed on the tablet: strings, possibly empty, possibly
// with a decimal comma ("3,5"). Empty means "not provided" and is rendered
// as a placeholder by the report composers. [ParseNumber] is the one place
// that turns a field into a number.
//
// Dates are ISO 8601, either "2024-05-14" or "2024-05-14T09:30". Soil
// surveys store their weather in CommonData as "<description> - <temp>°C",
// for example "Ensoleillé - 18°C".
//
// Gas and PID surveys store longitude, latitude and altitude in the X, Y and
// Z members of [Coordinates].
//
// # Derived Well Values
//
// Groundwater wells carry three values computed from total depth, water
// level and inner diameter (cylindrical casing):
//
//	water column (m) = total depth - water level
//	volume (L)       = pi * (inner diameter mm / 2000)^2 * column * 1000
//	three volumes    = 3 * volume
//
// They are recomputed on every decode by [Recompute] and are unset whenever
// an input is missing or not a number.
//
// # Export Filenames
//
// Single survey: "{prefix}-{name|sans-nom}-{yyyy-MM-dd-HH-mm}", where the
// prefix comes from [SurveyType.FilePrefix]. Site list: "fiches-{project
// number|sans-numero}". Extensions belong to the output sink.
package domain
