package kinetics

import (
	"fmt"
	"math"

	"github.com/san-kum/globalkin/internal/dynamo"
)

// Coefficients parameterize k(T) = A * 10^(-B) * T^C * exp(-D/T).
type Coefficients struct {
	A, B, C, D float64
}

// RateCoefficient evaluates the rate law at electron temperature T (eV).
func RateCoefficient(c Coefficients, T float64) (float64, error) {
	if math.IsNaN(T) || math.IsInf(T, 0) || T <= 0 {
		return 0, fmt.Errorf("%w: got %g", dynamo.ErrInvalidTemperature, T)
	}
	return c.A * math.Pow(10, -c.B) * math.Pow(T, c.C) * math.Exp(-c.D/T), nil
}
