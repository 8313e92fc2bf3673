package kinetics

type Species int

const (
	Electron Species = iota
	GroundState
	ExcitedState1
	ExcitedState2
	Ion
)

const NumSpecies = 5

var speciesLabels = [NumSpecies]string{"e", "Ar", "Ar(4s)", "Ar(4p)", "Ar+"}

var speciesNames = [NumSpecies]string{"electron", "ground", "excited1", "excited2", "ion"}

func (s Species) String() string {
	if s < 0 || int(s) >= NumSpecies {
		return "unknown"
	}
	return speciesLabels[s]
}

// Key is the lower-case identifier used in config files.
func (s Species) Key() string {
	if s < 0 || int(s) >= NumSpecies {
		return "unknown"
	}
	return speciesNames[s]
}

func AllSpecies() []Species {
	return []Species{Electron, GroundState, ExcitedState1, ExcitedState2, Ion}
}
