// Package money normalizes ambiguous numeric amounts into integer minor
// units (cents, kobo) and back.
package money

import "math"

// ToMinorUnits converts a numeric amount to integer minor units.
//
// An integral value greater than 1000 is assumed to already be in minor units
// and is returned unchanged; anything else is treated as a major-unit decimal
// and multiplied by 100 with round-to-nearest. The inference is lossy: a
// genuine major-unit amount like 1500.00 is misread as already-minor, and the
// integer 1000 itself sits on the major side of the boundary. Callers that
// know their unit should not rely on the inference.
//
// Non-finite input yields 0. This is a silent clamp, not validation.
func ToMinorUnits(value float64) int64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if value == math.Trunc(value) && value > 1000 {
		return int64(value)
	}
	return int64(math.Round(value * 100))
}

// ToMajorUnits converts integer minor units to a major-unit decimal.
// It is not an exact inverse of ToMinorUnits for minor amounts <= 1000.
func ToMajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
