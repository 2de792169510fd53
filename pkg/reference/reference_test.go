package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
)

func TestSelection(t *testing.T) {
	t.Parallel()

	xs := []float64{4, 1, 3, 2}

	got, err := KthElement(xs, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 0)

	got, err = Median(xs)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 0)

	got, err = MedianLow(xs)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 0)

	got, err = MedianHigh(xs)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 0)

	assert.Equal(t, []float64{4, 1, 3, 2}, xs)
}

func TestMedianGrouped(t *testing.T) {
	t.Parallel()

	got, err := MedianGrouped([]float64{52, 52, 53, 54}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 52.5, got, 1e-12)

	got, err = MedianGrouped([]float64{1, 3, 3, 5, 7}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got, 1e-12)

	_, err = MedianGrouped([]float64{1, 2}, 0)
	require.ErrorIs(t, err, stats.ErrInvalidRange)
}

func TestDispersion(t *testing.T) {
	t.Parallel()

	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	got, err := Mean(xs)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-12)

	got, err = Pstdev(xs)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)

	got, err = HarmonicMean([]float64{2.5, 3, 10})
	require.NoError(t, err)
	assert.InDelta(t, 3.6, got, 1e-12)

	_, err = Variance([]float64{1})
	require.ErrorIs(t, err, stats.ErrInsufficientData)

	_, err = HarmonicMean([]float64{1, 0})
	require.ErrorIs(t, err, stats.ErrDomain)
}

func TestMode(t *testing.T) {
	t.Parallel()

	got, err := Mode([]float64{1, 2, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 0)

	_, err = Mode(nil)
	require.ErrorIs(t, err, stats.ErrEmptyInput)
}

func TestForKernel_CoversDefaultRegistry(t *testing.T) {
	t.Parallel()

	for _, name := range kernels.Default().Names() {
		_, ok := ForKernel(name)
		assert.True(t, ok, name)
	}

	_, ok := ForKernel("nope")
	assert.False(t, ok)
}

func TestForKernel_AgreesWithKernels(t *testing.T) {
	t.Parallel()

	xs := []float64{9, 2, 7, 2, 5, 8, 1, 3}
	params := kernels.Params{K: 3, Interval: 1}

	for _, k := range kernels.Default().Kernels() {
		ref, ok := ForKernel(k.Name())
		require.True(t, ok)

		want, err := ref(xs, params)
		require.NoError(t, err, k.Name())

		got, err := k.Compute(xs, params)
		require.NoError(t, err, k.Name())

		assert.True(t, stats.IsClose(want, got), "%s: want %v got %v", k.Name(), want, got)
	}
}
