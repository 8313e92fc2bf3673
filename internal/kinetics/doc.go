// Package kinetics models electron-impact reaction kinetics in a
// zero-dimensional argon plasma.
//
// A [Network] is an immutable table of bimolecular [Reaction]s, each with a
// generalized Arrhenius rate law ([Coefficients]) and a per-species
// stoichiometry. Binding a network to an electron temperature yields a
// [Mechanism], which implements [dynamo.System] and can be handed to any
// integrator:
//
//	mech, err := kinetics.ArgonNetwork().Bind(5.4)
//	if err != nil {
//	    return err // temperature <= 0
//	}
//	dn := mech.Derive(state, 0)
//
// # Reaction 1
//
// The reference argon network computes the direct ionization rate R1 but
// gives it no stoichiometry, so it never enters a derivative. Use
// [ArgonNetworkWithDirectIonization] for the variant where R1 feeds the
// electron, ground-state and ion balances.
package kinetics
