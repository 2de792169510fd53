package dispersion

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

func TestRunning_ZeroValue(t *testing.T) {
	t.Parallel()

	var r Running

	assert.Equal(t, 0, r.Count())

	_, err := r.Mean()
	require.ErrorIs(t, err, stats.ErrEmptyInput)

	_, err = r.Variance()
	require.ErrorIs(t, err, stats.ErrInsufficientData)
}

func TestRunning_SingleObservation(t *testing.T) {
	t.Parallel()

	r := NewRunning([]float64{4})

	mean, err := r.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, mean, 1e-12)

	_, err = r.PVariance()
	require.ErrorIs(t, err, stats.ErrInsufficientData)

	_, err = r.Pstdev()
	require.ErrorIs(t, err, stats.ErrInsufficientData)
}

func TestRunning_MatchesTwoPass(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(testSeed, 3))

	for range propertyRounds {
		xs := randomFloat32s(rng, 2+rng.IntN(maxPropertyLen))
		r := NewRunning(xs)

		require.Equal(t, len(xs), r.Count())

		wantMean, err := Mean(xs)
		require.NoError(t, err)

		gotMean, err := r.Mean()
		require.NoError(t, err)
		assert.True(t, stats.IsCloseTol(wantMean, gotMean, 1e-9, 1e-9))

		wantVar, err := Variance(xs)
		require.NoError(t, err)

		gotVar, err := r.Variance()
		require.NoError(t, err)
		assert.True(t, stats.IsCloseTol(wantVar, gotVar, 1e-9, 1e-9))

		wantStdev, err := Pstdev(xs)
		require.NoError(t, err)

		gotStdev, err := r.Pstdev()
		require.NoError(t, err)
		assert.True(t, stats.IsCloseTol(wantStdev, gotStdev, 1e-9, 1e-9))
	}
}

func TestRunning_Push(t *testing.T) {
	t.Parallel()

	r := &Running{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Push(v)
	}

	mean, err := r.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mean, 1e-12)

	pstdev, err := r.Pstdev()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, pstdev, 1e-12)

	stdev, err := r.Stdev()
	require.NoError(t, err)
	assert.InDelta(t, 2.138089935299395, stdev, 1e-12)
}
