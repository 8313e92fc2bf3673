package metrics

import "github.com/san-kum/globalkin/internal/dynamo"

// Positivity is the fraction of samples whose densities are all finite and
// non-negative.
type Positivity struct {
	name       string
	violations int
	samples    int
}

func NewPositivity() *Positivity {
	return &Positivity{name: "positivity"}
}

func (p *Positivity) Name() string { return p.name }

func (p *Positivity) Observe(x dynamo.State, t float64) {
	p.samples++
	if idx, _ := x.FirstInvalid(); idx >= 0 {
		p.violations++
	}
}

func (p *Positivity) Value() float64 {
	if p.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(p.violations)/float64(p.samples)
}

func (p *Positivity) Reset() {
	p.violations = 0
	p.samples = 0
}

// IonizationFraction reports n_ion / n_heavy at the last finite sample.
type IonizationFraction struct {
	name  string
	ion   int
	heavy []int
	last  float64
}

func NewIonizationFraction(ion int, heavy ...int) *IonizationFraction {
	return &IonizationFraction{name: "ionization_fraction", ion: ion, heavy: heavy}
}

func (f *IonizationFraction) Name() string { return f.name }

func (f *IonizationFraction) Observe(x dynamo.State, t float64) {
	total := 0.0
	for _, i := range f.heavy {
		total += x[i]
	}
	if total > 0 && finite(total) && finite(x[f.ion]) {
		f.last = x[f.ion] / total
	}
}

func (f *IonizationFraction) Value() float64 { return f.last }
func (f *IonizationFraction) Reset()         { f.last = 0 }
