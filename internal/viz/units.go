package viz

import "strings"

// DensityUnit is what loaded Tecplot tables carry when no other unit applies.
// Simulated runs are in m^-3.
const DensityUnit = "cm^-3"

var specialUnits = []struct{ key, unit string }{
	{"velocity", "m/s"},
	{"temp", "K"},
	{"pressure", "Pa"},
	{"density", "kg/m^3"},
}

// Unit returns the display unit for a variable name.
func Unit(name string) string {
	lower := strings.ToLower(name)
	for _, s := range specialUnits {
		if strings.Contains(lower, s.key) {
			return s.unit
		}
	}
	return DensityUnit
}
