// Package selection implements order-statistic selection and the median
// family on top of it. Every operation works on a private copy of its input
// and uses partition-based selection rather than a full sort.
package selection

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// KthElement returns the element at index k of xs sorted ascending.
// It fails with stats.ErrInvalidRange when xs is empty or k is out of bounds.
func KthElement[T cmp.Ordered](xs []T, k int) (T, error) {
	var zero T

	err := checkRank("kth_element", k, len(xs))
	if err != nil {
		return zero, err
	}

	out := make([]T, 1)
	newSelector(xs).resolve([]int{k}, out, 0, len(xs), false)

	return out[0], nil
}

// KthElements returns the values of several ranks, keyed by rank, using a
// single partitioning pass shared between them. Duplicate ranks are allowed.
func KthElements[T cmp.Ordered](xs []T, ks []int) (map[int]T, error) {
	for _, k := range ks {
		err := checkRank("kth_elements", k, len(xs))
		if err != nil {
			return nil, err
		}
	}

	ranks := slices.Clone(ks)
	slices.Sort(ranks)
	ranks = slices.Compact(ranks)

	out := make([]T, len(ranks))
	newSelector(xs).resolve(ranks, out, 0, len(xs), false)

	found := make(map[int]T, len(ranks))
	for i, k := range ranks {
		found[k] = out[i]
	}

	return found, nil
}

func checkRank(op string, k, n int) error {
	if k < 0 || k >= n {
		return fmt.Errorf("%s: %w: rank %d outside [0, %d)", op, stats.ErrInvalidRange, k, n)
	}

	return nil
}
