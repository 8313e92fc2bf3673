package kinetics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/kinetics"
)

var reference = dynamo.State{9.24e18, 1.4e23, 1.43e18, 8.7e17, 9.24e18}

const te = 5.4

var _ = Describe("ArgonNetwork", func() {
	var net kinetics.Network

	BeforeEach(func() {
		net = kinetics.ArgonNetwork()
	})

	It("has ten reactions numbered in order", func() {
		rs := net.Reactions()
		Expect(rs).To(HaveLen(10))
		for i, r := range rs {
			Expect(r.ID).To(Equal(i + 1))
			Expect(r.Reactants[0]).To(Equal(kinetics.Electron))
		}
	})

	It("hands out copies of its reaction table", func() {
		rs := net.Reactions()
		rs[1].Coefficients.A = 0
		Expect(net.Reactions()[1].Coefficients.A).To(Equal(5.0))
	})

	It("evaluates reaction 1 with its direct formula", func() {
		m, err := net.Bind(te)
		Expect(err).NotTo(HaveOccurred())
		direct := 2.34e-14 * math.Pow(te, 0.59) * math.Exp(-15.76/te)
		Expect(m.Coefficients()[0]).To(Equal(direct))
	})

	It("rejects a non-positive temperature before computing anything", func() {
		for _, T := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err := net.Bind(T)
			Expect(err).To(MatchError(dynamo.ErrInvalidTemperature))
		}
	})

	Describe("ReactionRates", func() {
		It("multiplies each coefficient by its reactant densities", func() {
			rates, err := net.ReactionRates(reference, te)
			Expect(err).NotTo(HaveOccurred())
			Expect(rates).To(HaveLen(10))

			m, _ := net.Bind(te)
			k := m.Coefficients()
			for i, r := range net.Reactions() {
				want := k[i] * reference[r.Reactants[0]] * reference[r.Reactants[1]]
				Expect(rates[i]).To(Equal(want))
			}
		})

		It("is non-negative for non-negative densities", func() {
			states := []dynamo.State{
				reference,
				{0, 0, 0, 0, 0},
				{1, 0, 1, 0, 1},
				{1e20, 1e25, 1e10, 0, 3},
			}
			for _, x := range states {
				for _, T := range []float64{0.1, 1, te, 50} {
					rates, err := net.ReactionRates(x, T)
					Expect(err).NotTo(HaveOccurred())
					for _, r := range rates {
						Expect(r).To(BeNumerically(">=", 0))
					}
				}
			}
		})

		It("rejects a state of the wrong length", func() {
			_, err := net.ReactionRates(dynamo.State{1, 2, 3}, te)
			Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
		})
	})

	Describe("Derivative", func() {
		It("matches the per-species rate expressions", func() {
			rates, err := net.ReactionRates(reference, te)
			Expect(err).NotTo(HaveOccurred())
			R := append([]float64{0}, rates...)

			d, err := net.Derivative(reference, te)
			Expect(err).NotTo(HaveOccurred())

			Expect(d[kinetics.Electron]).To(Equal(R[8] + R[9] + R[10]))
			Expect(d[kinetics.GroundState]).To(Equal(-R[2] + R[3] - R[4] + R[5] - R[8]))
			Expect(d[kinetics.ExcitedState1]).To(Equal(R[2] - R[3] - R[6] + R[7] - R[9]))
			Expect(d[kinetics.ExcitedState2]).To(Equal(R[4] - R[5] + R[6] - R[7] - R[10]))
			Expect(d[kinetics.Ion]).To(Equal(R[8] + R[9] + R[10]))
		})

		It("keeps the electron and ion derivatives identical", func() {
			for _, x := range []dynamo.State{reference, {1, 2, 3, 4, 5}, {7e17, 3e22, 0, 1e12, 2e15}} {
				d, err := net.Derivative(x, te)
				Expect(err).NotTo(HaveOccurred())
				Expect(d[kinetics.Electron]).To(Equal(d[kinetics.Ion]))
			}
		})

		It("is finite at the reference point", func() {
			d, err := net.Derivative(reference, te)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.IsValid()).To(BeTrue())
		})

		It("ignores reaction 1", func() {
			zeroed := net.Reactions()
			zeroed[0].Coefficients.A = 0
			alt, err := kinetics.NewNetwork("argon-no-r1", zeroed)
			Expect(err).NotTo(HaveOccurred())

			d1, _ := net.Derivative(reference, te)
			d2, _ := alt.Derivative(reference, te)
			Expect(d1).To(Equal(d2))
		})

		It("propagates the temperature error", func() {
			_, err := net.Derivative(reference, 0)
			Expect(err).To(MatchError(dynamo.ErrInvalidTemperature))
		})
	})
})

var _ = Describe("ArgonNetworkWithDirectIonization", func() {
	It("adds reaction 1 to the ionization balance", func() {
		ref, _ := kinetics.ArgonNetwork().Derivative(reference, te)
		alt, _ := kinetics.ArgonNetworkWithDirectIonization().Derivative(reference, te)
		rates, _ := kinetics.ArgonNetwork().ReactionRates(reference, te)

		Expect(alt[kinetics.Electron]).To(BeNumerically("~", ref[kinetics.Electron]+rates[0], 1e-9*math.Abs(ref[kinetics.Electron])))
		Expect(alt[kinetics.Electron]).To(Equal(alt[kinetics.Ion]))
		Expect(alt[kinetics.GroundState]).To(BeNumerically("<", ref[kinetics.GroundState]))
		Expect(alt[kinetics.ExcitedState1]).To(Equal(ref[kinetics.ExcitedState1]))
	})
})

var _ = Describe("NewNetwork", func() {
	It("numbers reactions without an id", func() {
		net, err := kinetics.NewNetwork("tiny", []kinetics.Reaction{
			{Coefficients: kinetics.Coefficients{A: 1}, Reactants: [2]kinetics.Species{kinetics.Electron, kinetics.GroundState}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(net.Reactions()[0].ID).To(Equal(1))
	})

	It("rejects an unknown reactant", func() {
		_, err := kinetics.NewNetwork("bad", []kinetics.Reaction{
			{ID: 1, Reactants: [2]kinetics.Species{kinetics.Electron, kinetics.Species(9)}},
		})
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	})
})
