package kinetics

// Stoichiometry rows are ordered Electron, GroundState, ExcitedState1,
// ExcitedState2, Ion.
var none = [NumSpecies]int{}

// ionizeFrom: e + X -> 2e + Ar+.
func ionizeFrom(sp Species) [NumSpecies]int {
	var s [NumSpecies]int
	s[Electron], s[Ion] = 1, 1
	s[sp] = -1
	return s
}

// transfer: e + X -> e + Y.
func transfer(from, to Species) [NumSpecies]int {
	var s [NumSpecies]int
	s[from], s[to] = -1, 1
	return s
}

func argonReactions() []Reaction {
	return []Reaction{
		{ID: 1, Name: "e + Ar -> 2e + Ar+ (direct)", Coefficients: Coefficients{2.34e-14, 0, 0.59, 15.76}, Reactants: [2]Species{Electron, GroundState}, Stoichiometry: none},
		{ID: 2, Name: "e + Ar -> e + Ar(4s)", Coefficients: Coefficients{5.0, 15, 0.74, 11.56}, Reactants: [2]Species{Electron, GroundState}, Stoichiometry: transfer(GroundState, ExcitedState1)},
		{ID: 3, Name: "e + Ar(4s) -> e + Ar", Coefficients: Coefficients{4.3, 16, 0.74, 0}, Reactants: [2]Species{Electron, ExcitedState1}, Stoichiometry: transfer(ExcitedState1, GroundState)},
		{ID: 4, Name: "e + Ar -> e + Ar(4p)", Coefficients: Coefficients{1.4, 14, 0.71, 13.2}, Reactants: [2]Species{Electron, GroundState}, Stoichiometry: transfer(GroundState, ExcitedState2)},
		{ID: 5, Name: "e + Ar(4p) -> e + Ar", Coefficients: Coefficients{3.9, 16, 0.71, 0}, Reactants: [2]Species{Electron, ExcitedState2}, Stoichiometry: transfer(ExcitedState2, GroundState)},
		{ID: 6, Name: "e + Ar(4s) -> e + Ar(4p)", Coefficients: Coefficients{8.9, 13, 0.51, 1.59}, Reactants: [2]Species{Electron, ExcitedState1}, Stoichiometry: transfer(ExcitedState1, ExcitedState2)},
		{ID: 7, Name: "e + Ar(4p) -> e + Ar(4s)", Coefficients: Coefficients{3.0, 13, 0.51, 0}, Reactants: [2]Species{Electron, ExcitedState2}, Stoichiometry: transfer(ExcitedState2, ExcitedState1)},
		{ID: 8, Name: "e + Ar -> 2e + Ar+", Coefficients: Coefficients{2.9, 14, 0.68, 15.759}, Reactants: [2]Species{Electron, GroundState}, Stoichiometry: ionizeFrom(GroundState)},
		{ID: 9, Name: "e + Ar(4s) -> 2e + Ar+", Coefficients: Coefficients{6.8, 15, 0.67, 4.2}, Reactants: [2]Species{Electron, ExcitedState1}, Stoichiometry: ionizeFrom(ExcitedState1)},
		{ID: 10, Name: "e + Ar(4p) -> 2e + Ar+", Coefficients: Coefficients{1.8, 13, 0.61, 2.61}, Reactants: [2]Species{Electron, ExcitedState2}, Stoichiometry: ionizeFrom(ExcitedState2)},
	}
}

// ArgonNetwork is the reference ten-reaction argon model. Reaction 1 is
// evaluated but carries no stoichiometry.
func ArgonNetwork() Network {
	return Network{name: "argon", reactions: argonReactions()}
}

// ArgonNetworkWithDirectIonization lets reaction 1 produce an electron-ion
// pair from the ground state, symmetric with reactions 8-10.
func ArgonNetworkWithDirectIonization() Network {
	rs := argonReactions()
	rs[0].Stoichiometry = ionizeFrom(GroundState)
	return Network{name: "argon-direct", reactions: rs}
}
