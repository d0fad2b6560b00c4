package domain

import (
	"math"
	"strconv"
	"strings"
)

// Recompute returns w with its derived fields set from TotalDepth,
// WaterLevel and InnerDiameter:
//
//	water column (m)    = total depth - water level
//	water volume (L)    = pi * (inner diameter mm / 2000)^2 * column * 1000
//	three volumes (L)   = 3 * water volume
//
// If any input is missing or not a number, or the geometry is impossible
// (negative column, non-positive diameter), all three derived fields are
// cleared. Stored derived values are never trusted.
func Recompute(w WellCharacteristics) WellCharacteristics {
	w.WaterColumnHeight = nil
	w.TotalWaterVolume = nil
	w.ThreeVolumes = nil

	depth, ok1 := ParseNumber(w.TotalDepth)
	level, ok2 := ParseNumber(w.WaterLevel)
	diameter, ok3 := ParseNumber(w.InnerDiameter)
	if !ok1 || !ok2 || !ok3 {
		return w
	}

	column := depth - level
	if column < 0 || diameter <= 0 {
		return w
	}

	radius := diameter / 2000
	volume := math.Pi * radius * radius * column * 1000
	three := 3 * volume

	w.WaterColumnHeight = &column
	w.TotalWaterVolume = &volume
	w.ThreeVolumes = &three
	return w
}

// ParseNumber parses a field value typed by an operator. Surrounding spaces
// are ignored and a decimal comma is accepted. Empty, NaN and infinite
// values are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
