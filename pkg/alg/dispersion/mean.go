// Package dispersion implements mean-based aggregates: arithmetic and harmonic
// means, sample and population variance, and their standard deviations.
// Results are float64 for every input domain.
package dispersion

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// compensated is a Neumaier summation accumulator.
type compensated struct {
	sum        float64
	correction float64
}

func (c *compensated) add(x float64) {
	t := c.sum + x

	if math.Abs(c.sum) >= math.Abs(x) {
		c.correction += (c.sum - t) + x
	} else {
		c.correction += (x - t) + c.sum
	}

	c.sum = t
}

func (c *compensated) value() float64 {
	if math.IsInf(c.sum, 0) || math.IsNaN(c.sum) {
		return c.sum
	}

	return c.sum + c.correction
}

func sum[T stats.Number](xs []T) float64 {
	var acc compensated

	for _, v := range xs {
		acc.add(float64(v))
	}

	return acc.value()
}

// Mean returns the arithmetic mean of xs.
func Mean[T stats.Number](xs []T) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("mean: %w", stats.ErrEmptyInput)
	}

	return sum(xs) / float64(len(xs)), nil
}
