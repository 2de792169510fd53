package selection

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// MedianGrouped estimates the median of continuous data grouped into classes
// of width interval, each observed value being a class midpoint:
//
//	median = L + interval * (n/2 - cf) / f
//
// where L is the lower limit of the class holding the value of rank n/2,
// cf the number of values below that class and f the number of values in it.
// A single element is returned unchanged. interval must be positive and finite.
func MedianGrouped[T stats.Number](xs []T, interval float64) (float64, error) {
	n := len(xs)
	if n == 0 {
		return 0, fmt.Errorf("median_grouped: %w", stats.ErrEmptyInput)
	}

	if !(interval > 0) || math.IsInf(interval, 1) {
		return 0, fmt.Errorf("median_grouped: %w: interval %v must be positive and finite",
			stats.ErrInvalidRange, interval)
	}

	if n == 1 {
		return float64(xs[0]), nil
	}

	out := make([]T, 1)
	newSelector(xs).resolve([]int{n / 2}, out, 0, n, false)
	x := out[0]

	var below, within int

	for _, v := range xs {
		switch {
		case v < x:
			below++
		case v == x:
			within++
		}
	}

	lower := float64(x) - interval/2

	return lower + interval*(float64(n)/2-float64(below))/float64(within), nil
}
