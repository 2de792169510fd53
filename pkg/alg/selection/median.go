package selection

import (
	"cmp"
	"fmt"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// Median returns the middle value of xs. For an even number of elements it is
// the mean of the two middle values, so the result is always a float64.
func Median[T stats.Number](xs []T) (float64, error) {
	low, high, err := middle(xs)
	if err != nil {
		return 0, fmt.Errorf("median: %w", err)
	}

	if len(xs)%2 == 1 {
		return float64(low), nil
	}

	return (float64(low) + float64(high)) / 2, nil
}

// MedianLow returns the middle value for odd length and the smaller of the two
// middle values for even length. The result is always an element of xs.
func MedianLow[T cmp.Ordered](xs []T) (T, error) {
	low, _, err := middle(xs)
	if err != nil {
		return low, fmt.Errorf("median_low: %w", err)
	}

	return low, nil
}

// MedianHigh returns the middle value for odd length and the larger of the two
// middle values for even length. The result is always an element of xs.
func MedianHigh[T cmp.Ordered](xs []T) (T, error) {
	_, high, err := middle(xs)
	if err != nil {
		return high, fmt.Errorf("median_high: %w", err)
	}

	return high, nil
}

// middle returns the values of ranks (n-1)/2 and n/2, which coincide for odd n.
func middle[T cmp.Ordered](xs []T) (low, high T, err error) {
	n := len(xs)
	if n == 0 {
		return low, high, stats.ErrEmptyInput
	}

	lowRank, highRank := (n-1)/2, n/2
	sel := newSelector(xs)

	if lowRank == highRank {
		out := make([]T, 1)
		sel.resolve([]int{lowRank}, out, 0, n, false)

		return out[0], out[0], nil
	}

	out := make([]T, 2)
	sel.resolve([]int{lowRank, highRank}, out, 0, n, false)

	return out[0], out[1], nil
}
