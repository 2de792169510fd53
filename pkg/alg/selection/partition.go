package selection

import (
	"cmp"
	"slices"
)

// sortThreshold bounds how lopsided a partition step may be before the
// remaining range is sorted instead of partitioned again. A split whose smaller
// side holds at most this fraction of the larger side switches to sorting,
// capping the worst case at O(n log n).
const sortThreshold = 0.001

// xorshift is a xorshift* generator used for pivot choice. It is seeded from
// the input length, so a given input always takes the same partition path.
type xorshift struct {
	state uint64
}

func newXorshift(seed int) xorshift {
	return xorshift{state: uint64(seed) + 1}
}

func (r *xorshift) next() uint64 {
	state := r.state + 1442695040888963407
	state ^= state >> 12
	state ^= state << 25
	state ^= state >> 27
	r.state = state

	return state * 6364136223846793005
}

// between returns a pseudo-random index in [lo, hi). hi must exceed lo.
func (r *xorshift) between(lo, hi int) int {
	return lo + int(r.next()%uint64(hi-lo))
}

// partition reorders xs[lo:hi] around the value at pivotIdx and returns the
// pivot's final index p: xs[lo:p] < pivot <= xs[p:hi].
func partition[T cmp.Ordered](xs []T, pivotIdx, lo, hi int) int {
	last := hi - 1
	pivot := xs[pivotIdx]
	xs[pivotIdx], xs[last] = xs[last], xs[pivotIdx]

	store := lo

	for i := lo; i < last; i++ {
		if xs[i] < pivot {
			xs[i], xs[store] = xs[store], xs[i]
			store++
		}
	}

	xs[store], xs[last] = xs[last], xs[store]

	return store
}

func lopsided(left, right int) bool {
	small, large := min(left, right), max(left, right)

	return float64(small) <= sortThreshold*float64(large)
}

// selector resolves several order statistics over a private working copy.
type selector[T cmp.Ordered] struct {
	work []T
	rng  xorshift
}

func newSelector[T cmp.Ordered](xs []T) *selector[T] {
	return &selector[T]{
		work: slices.Clone(xs),
		rng:  newXorshift(len(xs)),
	}
}

// resolve stores in out[i] the value of rank ranks[i]. ranks must be sorted,
// unique and lie within [lo, hi).
func (s *selector[T]) resolve(ranks []int, out []T, lo, hi int, sortRange bool) {
	for len(ranks) > 0 && lo < hi {
		if sortRange {
			slices.Sort(s.work[lo:hi])

			for i, k := range ranks {
				out[i] = s.work[k]
			}

			return
		}

		p := partition(s.work, s.rng.between(lo, hi), lo, hi)
		sortRange = lopsided(p-lo, hi-p)

		idx, hit := slices.BinarySearch(ranks, p)

		next := idx
		if hit {
			out[idx] = s.work[p]
			next++
		}

		leftRanks, leftOut := ranks[:idx], out[:idx]
		rightRanks, rightOut := ranks[next:], out[next:]

		switch {
		case len(leftRanks) > 0 && len(rightRanks) > 0:
			s.resolve(leftRanks, leftOut, lo, p, sortRange)

			ranks, out, lo = rightRanks, rightOut, p+1
		case len(leftRanks) > 0:
			ranks, out, hi = leftRanks, leftOut, p
		default:
			ranks, out, lo = rightRanks, rightOut, p+1
		}
	}
}
