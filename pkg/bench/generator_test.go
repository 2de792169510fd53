package bench

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
)

const (
	testSeed = 20181003
	testSize = 500
)

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	for _, dist := range config.Distributions {
		a := NewGenerator(testSeed, 7, dist).Sequence(kernels.DomainFloat, 0, 100, testSize)
		b := NewGenerator(testSeed, 7, dist).Sequence(kernels.DomainFloat, 0, 100, testSize)
		c := NewGenerator(testSeed, 8, dist).Sequence(kernels.DomainFloat, 0, 100, testSize)

		assert.Equal(t, a, b, dist)
		assert.NotEqual(t, a, c, dist)
	}
}

func TestGenerator_Bounds(t *testing.T) {
	t.Parallel()

	for _, domain := range []kernels.Domain{
		kernels.DomainInt8, kernels.DomainUint8, kernels.DomainInt16, kernels.DomainUint16,
		kernels.DomainInt64, kernels.DomainUint64, kernels.DomainFloat, kernels.DomainFloat32,
	} {
		lo, hi := bounds(domain)

		for _, dist := range config.Distributions {
			xs := NewGenerator(testSeed, 1, dist).Sequence(domain, lo, hi, testSize)
			require.Len(t, xs, testSize)

			for _, x := range xs {
				require.GreaterOrEqual(t, x, lo, "%s/%s", domain, dist)
				require.LessOrEqual(t, x, hi, "%s/%s", domain, dist)

				if isIntegral(domain) {
					require.InDelta(t, math.Trunc(x), x, 0, "%s/%s", domain, dist)
				}

				if domain == kernels.DomainFloat32 {
					require.InDelta(t, float64(float32(x)), x, 0)
				}
			}
		}
	}
}

func TestGenerator_Sorted(t *testing.T) {
	t.Parallel()

	xs := NewGenerator(testSeed, 0, config.DistributionSorted).Sequence(kernels.DomainInt64, -10, 10, testSize)
	assert.True(t, slices.IsSorted(xs))
}

func TestGenerator_Duplicates(t *testing.T) {
	t.Parallel()

	xs := NewGenerator(testSeed, 0, config.DistributionDuplicates).Sequence(kernels.DomainFloat, 0, 1e6, testSize)

	distinct := slices.Compact(slices.Sorted(slices.Values(xs)))
	assert.LessOrEqual(t, len(distinct), testSize/duplicateRate)
}

func TestGenerator_Case(t *testing.T) {
	t.Parallel()

	reg := kernels.Default()

	harmonic, err := reg.Lookup("harmonic_mean")
	require.NoError(t, err)

	gen := NewGenerator(testSeed, 0, config.DistributionNormal)

	for range 20 {
		c := gen.Case(harmonic, testSize)
		require.Len(t, c.Input, testSize)

		for _, x := range c.Input {
			require.Positive(t, x)
		}

		assert.GreaterOrEqual(t, c.Params.K, 0)
		assert.Less(t, c.Params.K, testSize)
		assert.Contains(t, groupedIntervals, c.Params.Interval)
	}
}
