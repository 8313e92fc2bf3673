package kinetics

import "github.com/san-kum/globalkin/internal/dynamo"

// Mechanism is a Network bound to one electron temperature. The rate
// coefficients are fixed at Bind time; Derive is a pure function of the
// densities. A Mechanism reuses an internal rate buffer and must not be
// shared between goroutines.
type Mechanism struct {
	network     Network
	temperature float64
	k           []float64
	rates       []float64
}

func (m *Mechanism) StateDim() int        { return NumSpecies }
func (m *Mechanism) Temperature() float64 { return m.temperature }
func (m *Mechanism) Network() Network     { return m.network }

// Coefficients returns a copy of the bound rate coefficients k_i(T).
func (m *Mechanism) Coefficients() []float64 {
	out := make([]float64, len(m.k))
	copy(out, m.k)
	return out
}

func (m *Mechanism) Labels() []string {
	labels := make([]string, NumSpecies)
	for _, sp := range AllSpecies() {
		labels[sp] = sp.String()
	}
	return labels
}

// RatesInto writes the reaction rates for densities x into dst, which must
// have one slot per reaction.
func (m *Mechanism) RatesInto(x dynamo.State, dst []float64) {
	for i, r := range m.network.reactions {
		dst[i] = m.k[i] * x[r.Reactants[0]] * x[r.Reactants[1]]
	}
}

// Derive sums stoichiometry times rate over the reactions in table order.
func (m *Mechanism) Derive(x dynamo.State, _ float64) dynamo.State {
	m.RatesInto(x, m.rates)
	dx := make(dynamo.State, NumSpecies)
	for i, r := range m.network.reactions {
		for sp, nu := range r.Stoichiometry {
			switch nu {
			case 0:
			case 1:
				dx[sp] += m.rates[i]
			case -1:
				dx[sp] -= m.rates[i]
			default:
				dx[sp] += float64(nu) * m.rates[i]
			}
		}
	}
	return dx
}
