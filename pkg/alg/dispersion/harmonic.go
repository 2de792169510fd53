package dispersion

import (
	"fmt"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// HarmonicMean returns n / Σ(1/xᵢ). Every element must be strictly positive;
// zero or negative values fail with stats.ErrDomain.
func HarmonicMean[T stats.Number](xs []T) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("harmonic_mean: %w", stats.ErrEmptyInput)
	}

	var reciprocals compensated

	for i, v := range xs {
		x := float64(v)
		if !(x > 0) {
			return 0, fmt.Errorf("harmonic_mean: %w: element %d is %v, values must be positive",
				stats.ErrDomain, i, v)
		}

		reciprocals.add(1 / x)
	}

	return float64(len(xs)) / reciprocals.value(), nil
}
