package dispersion

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

const minVariancePoints = 2

// sumSquares returns the sum of squared deviations from the mean, computed in
// two passes. The residual sum of deviations, which is zero in exact
// arithmetic, is squared and subtracted to absorb rounding in the mean.
func sumSquares[T stats.Number](xs []T) float64 {
	n := float64(len(xs))
	mean := sum(xs) / n

	var total, residual compensated

	for _, v := range xs {
		d := float64(v) - mean
		total.add(d * d)
		residual.add(d)
	}

	r := residual.value()

	return max(total.value()-r*r/n, 0)
}

func checkVariance(op string, n int) error {
	if n < minVariancePoints {
		return fmt.Errorf("%s: %w: requires at least %d data points, got %d",
			op, stats.ErrInsufficientData, minVariancePoints, n)
	}

	return nil
}

// Variance returns the sample variance of xs (Bessel-corrected, divided by n-1).
func Variance[T stats.Number](xs []T) (float64, error) {
	err := checkVariance("variance", len(xs))
	if err != nil {
		return 0, err
	}

	return sumSquares(xs) / float64(len(xs)-1), nil
}

// PVariance returns the population variance of xs (divided by n).
func PVariance[T stats.Number](xs []T) (float64, error) {
	err := checkVariance("pvariance", len(xs))
	if err != nil {
		return 0, err
	}

	return sumSquares(xs) / float64(len(xs)), nil
}

// Stdev returns the sample standard deviation, the square root of Variance.
func Stdev[T stats.Number](xs []T) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}

// Pstdev returns the population standard deviation, the square root of PVariance.
func Pstdev[T stats.Number](xs []T) (float64, error) {
	v, err := PVariance(xs)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}
