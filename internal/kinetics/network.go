package kinetics

import (
	"fmt"

	"github.com/san-kum/globalkin/internal/dynamo"
)

// Reaction is one bimolecular channel. Its rate is k(T) times the product of
// the two reactant densities; Stoichiometry is the change in each species
// per unit of reaction progress.
type Reaction struct {
	ID            int
	Name          string
	Coefficients  Coefficients
	Reactants     [2]Species
	Stoichiometry [NumSpecies]int
}

// Network is a fixed, ordered reaction table. The zero value is empty; build
// one with NewNetwork or a constructor such as ArgonNetwork.
type Network struct {
	name      string
	reactions []Reaction
}

func NewNetwork(name string, reactions []Reaction) (Network, error) {
	rs := make([]Reaction, len(reactions))
	copy(rs, reactions)
	for i := range rs {
		if rs[i].ID == 0 {
			rs[i].ID = i + 1
		}
		for _, sp := range rs[i].Reactants {
			if sp < 0 || int(sp) >= NumSpecies {
				return Network{}, fmt.Errorf("%w: reaction %d has unknown reactant %d", dynamo.ErrInvalidConfig, rs[i].ID, sp)
			}
		}
	}
	return Network{name: name, reactions: rs}, nil
}

func (n Network) Name() string { return n.name }
func (n Network) Len() int     { return len(n.reactions) }

// Reactions returns a copy of the reaction table.
func (n Network) Reactions() []Reaction {
	rs := make([]Reaction, len(n.reactions))
	copy(rs, n.reactions)
	return rs
}

// Bind evaluates every rate coefficient at temperature T.
func (n Network) Bind(T float64) (*Mechanism, error) {
	k := make([]float64, len(n.reactions))
	for i, r := range n.reactions {
		v, err := RateCoefficient(r.Coefficients, T)
		if err != nil {
			return nil, fmt.Errorf("reaction %d: %w", r.ID, err)
		}
		k[i] = v
	}
	return &Mechanism{
		network:     n,
		temperature: T,
		k:           k,
		rates:       make([]float64, len(n.reactions)),
	}, nil
}

// ReactionRates returns rate_i = k_i(T) * n[a_i] * n[b_i] for every reaction,
// in table order.
func (n Network) ReactionRates(x dynamo.State, T float64) ([]float64, error) {
	m, err := n.Bind(T)
	if err != nil {
		return nil, err
	}
	if len(x) != NumSpecies {
		return nil, fmt.Errorf("%w: want %d densities, got %d", dynamo.ErrDimensionMismatch, NumSpecies, len(x))
	}
	out := make([]float64, len(n.reactions))
	m.RatesInto(x, out)
	return out, nil
}

// Derivative returns dn/dt for every species at temperature T.
func (n Network) Derivative(x dynamo.State, T float64) (dynamo.State, error) {
	m, err := n.Bind(T)
	if err != nil {
		return nil, err
	}
	if len(x) != NumSpecies {
		return nil, fmt.Errorf("%w: want %d densities, got %d", dynamo.ErrDimensionMismatch, NumSpecies, len(x))
	}
	return m.Derive(x, 0), nil
}
