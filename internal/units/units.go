// Package units provides shared constants and conversion factors for depth
// units
package units

import "fmt"

// Unit constants
const (
	Meter      = "m"
	Centimeter = "cm"
	Millimeter = "mm"
	Foot       = "ft"
	Inch       = "in"
)

// ValidUnits contains all valid depth unit values
var ValidUnits = []string{Meter, Centimeter, Millimeter, Foot, Inch}

// toMeter maps each unit to its length in meters.
var toMeter = map[string]float64{
	Meter:      1,
	Centimeter: 0.01,
	Millimeter: 0.001,
	Foot:       0.3048,
	Inch:       0.0254,
}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	_, ok := toMeter[unit]
	return ok
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, cm, mm, ft, in"
}

// Factor returns the multiplier that converts a length in fromUnit to
// toUnit, e.g. Factor("ft", "m") = 0.3048.
func Factor(fromUnit, toUnit string) (float64, error) {
	from, ok := toMeter[fromUnit]
	if !ok {
		return 0, fmt.Errorf("unknown depth unit %q, valid units are %s", fromUnit, GetValidUnitsString())
	}
	to, ok := toMeter[toUnit]
	if !ok {
		return 0, fmt.Errorf("unknown depth unit %q, valid units are %s", toUnit, GetValidUnitsString())
	}
	return from / to, nil
}
