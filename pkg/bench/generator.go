// Package bench drives the kernels against the reference oracle: parity
// checks over generated inputs and timed comparisons across input sizes.
package bench

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
)

// Value ranges of generated inputs. Integer bounds stay well inside 2^53 so
// every value and every partial sum is exact in float64.
const (
	floatHigh     = 1e6
	wideIntBound  = 1e6
	positiveFloor = 1
	normalSpread  = 8
	duplicateRate = 8
)

var groupedIntervals = []float64{0.5, 1, 2, 5}

// Case is one generated kernel invocation.
type Case struct {
	Input  []float64      `json:"input"  yaml:"input"`
	Params kernels.Params `json:"params" yaml:"params"`
}

// Generator produces deterministic inputs for a kernel.
type Generator struct {
	rng          *rand.Rand
	distribution string
}

// NewGenerator creates a generator. Equal seeds and streams yield equal sequences.
func NewGenerator(seed, stream uint64, distribution string) *Generator {
	return &Generator{
		rng:          rand.New(rand.NewPCG(seed, stream)),
		distribution: distribution,
	}
}

// Case generates an input of length n for k together with valid parameters.
func (g *Generator) Case(k kernels.Kernel, n int) Case {
	lo, hi := bounds(k.Domain())
	if k.Name() == "harmonic_mean" {
		lo = max(lo, positiveFloor)
	}

	c := Case{Input: g.Sequence(k.Domain(), lo, hi, n)}

	if n > 0 {
		c.Params.K = g.rng.IntN(n)
	}

	c.Params.Interval = groupedIntervals[g.rng.IntN(len(groupedIntervals))]

	return c
}

// Sequence draws n values in [lo, hi] shaped by the configured distribution.
// Integer domains receive integral values.
func (g *Generator) Sequence(domain kernels.Domain, lo, hi float64, n int) []float64 {
	integral := isIntegral(domain)
	out := make([]float64, n)

	switch g.distribution {
	case config.DistributionDuplicates:
		alphabet := make([]float64, max(2, n/duplicateRate))
		for i := range alphabet {
			alphabet[i] = math.Floor(g.uniform(lo, hi))
		}

		for i := range out {
			out[i] = alphabet[g.rng.IntN(len(alphabet))]
		}

		return out
	case config.DistributionNormal:
		mid, spread := (lo+hi)/2, (hi-lo)/normalSpread

		for i := range out {
			v := min(max(mid+spread*g.rng.NormFloat64(), lo), hi)
			out[i] = g.shape(v, domain, integral)
		}

		return out
	}

	for i := range out {
		out[i] = g.shape(g.uniform(lo, hi), domain, integral)
	}

	if g.distribution == config.DistributionSorted {
		slices.Sort(out)
	}

	return out
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) shape(v float64, domain kernels.Domain, integral bool) float64 {
	switch {
	case integral:
		return math.Floor(v)
	case domain == kernels.DomainFloat32:
		return float64(float32(v))
	default:
		return v
	}
}

func isIntegral(domain kernels.Domain) bool {
	switch domain {
	case kernels.DomainFloat, kernels.DomainFloat32:
		return false
	default:
		return true
	}
}

// bounds returns the inclusive value range generated for a domain.
func bounds(domain kernels.Domain) (float64, float64) {
	switch domain {
	case kernels.DomainInt8:
		return math.MinInt8, math.MaxInt8
	case kernels.DomainUint8:
		return 0, math.MaxUint8
	case kernels.DomainInt16:
		return math.MinInt16, math.MaxInt16
	case kernels.DomainUint16:
		return 0, math.MaxUint16
	case kernels.DomainInt, kernels.DomainInt32, kernels.DomainInt64:
		return -wideIntBound, wideIntBound
	case kernels.DomainUint, kernels.DomainUint32, kernels.DomainUint64:
		return 0, 2 * wideIntBound
	default:
		return 0, floatHigh
	}
}
