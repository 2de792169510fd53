package selection

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

const (
	testSeed       = 20181003
	propertyRounds = 200
	maxPropertyLen = 300
)

func randomFloats(rng *rand.Rand, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64() * 1e3
	}

	return xs
}

func randomInts(rng *rand.Rand, n, alphabet int) []int64 {
	xs := make([]int64, n)
	for i := range xs {
		xs[i] = rng.Int64N(int64(alphabet)) - int64(alphabet/2)
	}

	return xs
}

func TestKthElement_Example(t *testing.T) {
	t.Parallel()

	got, err := KthElement([]int{5, 3, 1, 4, 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestKthElement_InvalidRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		xs   []int
		k    int
	}{
		{name: "empty", xs: nil, k: 0},
		{name: "negative", xs: []int{1, 2}, k: -1},
		{name: "equal_to_len", xs: []int{1, 2}, k: 2},
		{name: "far_out", xs: []int{1}, k: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := KthElement(tt.xs, tt.k)
			require.ErrorIs(t, err, stats.ErrInvalidRange)
			assert.Equal(t, stats.KindInvalidRange, stats.KindOf(err))
			assert.True(t, strings.HasPrefix(err.Error(), "kth_element: "), err.Error())
		})
	}
}

func TestKthElement_MatchesSorted(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(testSeed, 1))

	for range propertyRounds {
		xs := randomFloats(rng, 1+rng.IntN(maxPropertyLen))
		k := rng.IntN(len(xs))

		sorted := slices.Clone(xs)
		slices.Sort(sorted)

		got, err := KthElement(xs, k)
		require.NoError(t, err)
		assert.Equal(t, sorted[k], got) //nolint:testifylint // order statistics are exact.
	}
}

func TestKthElement_Duplicates(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(testSeed, 2))

	for range propertyRounds {
		xs := randomInts(rng, 1+rng.IntN(maxPropertyLen), 4)
		k := rng.IntN(len(xs))

		sorted := slices.Clone(xs)
		slices.Sort(sorted)

		got, err := KthElement(xs, k)
		require.NoError(t, err)
		assert.Equal(t, sorted[k], got)
	}
}

func TestKthElement_AllEqualLarge(t *testing.T) {
	t.Parallel()

	xs := make([]uint32, 50_000)
	for i := range xs {
		xs[i] = 7
	}

	got, err := KthElement(xs, len(xs)-1)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got)
}

func TestKthElement_SortedAndReversedLarge(t *testing.T) {
	t.Parallel()

	const n = 100_000

	ascending := make([]int, n)
	descending := make([]int, n)

	for i := range n {
		ascending[i] = i
		descending[i] = n - 1 - i
	}

	for _, k := range []int{0, 1, n / 3, n / 2, n - 1} {
		got, err := KthElement(ascending, k)
		require.NoError(t, err)
		assert.Equal(t, k, got)

		got, err = KthElement(descending, k)
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestKthElement_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	xs := []float64{9, 1, 8, 2, 7, 3}
	original := slices.Clone(xs)

	_, err := KthElement(xs, 3)
	require.NoError(t, err)
	assert.Equal(t, original, xs)
}

func TestKthElement_Deterministic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(testSeed, 3))
	xs := randomFloats(rng, 1000)

	first, err := KthElement(xs, 500)
	require.NoError(t, err)

	second, err := KthElement(xs, 500)
	require.NoError(t, err)

	assert.Equal(t, first, second) //nolint:testifylint // determinism is bit-exact.
}

func TestKthElement_Strings(t *testing.T) {
	t.Parallel()

	got, err := KthElement([]string{"pear", "apple", "fig"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "fig", got)
}

func TestKthElements(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(testSeed, 4))

	for range propertyRounds {
		xs := randomInts(rng, 1+rng.IntN(maxPropertyLen), 50)
		ks := make([]int, 1+rng.IntN(8))

		for i := range ks {
			ks[i] = rng.IntN(len(xs))
		}

		sorted := slices.Clone(xs)
		slices.Sort(sorted)

		got, err := KthElements(xs, ks)
		require.NoError(t, err)

		for _, k := range ks {
			assert.Equal(t, sorted[k], got[k])
		}
	}
}

func TestKthElements_RejectsAnyOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := KthElements([]int{1, 2, 3}, []int{0, 3})
	require.ErrorIs(t, err, stats.ErrInvalidRange)
	assert.EqualError(t, err, "kth_elements: invalid range: rank 3 outside [0, 3)")
}

func TestKthElements_EmptyRanks(t *testing.T) {
	t.Parallel()

	got, err := KthElements([]int{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPartition(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(testSeed, 5))

	for range propertyRounds {
		xs := randomInts(rng, 1+rng.IntN(maxPropertyLen), 20)
		pivotIdx := rng.IntN(len(xs))
		pivot := xs[pivotIdx]

		p := partition(xs, pivotIdx, 0, len(xs))

		require.Equal(t, pivot, xs[p])

		for _, v := range xs[:p] {
			assert.Less(t, v, pivot)
		}

		for _, v := range xs[p:] {
			assert.GreaterOrEqual(t, v, pivot)
		}
	}
}

func TestLopsided(t *testing.T) {
	t.Parallel()

	assert.True(t, lopsided(0, 10))
	assert.True(t, lopsided(10, 0))
	assert.True(t, lopsided(1, 5000))
	assert.False(t, lopsided(1, 10))
	assert.False(t, lopsided(500, 500))
}
