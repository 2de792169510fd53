// Package reference holds straightforward sort- and count-based statistics
// used as the oracle for kernel parity checks. Nothing here is tuned for speed.
package reference

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
)

// Func computes a statistic over a host sequence.
type Func func(xs []float64, params kernels.Params) (float64, error)

const minVariancePoints = 2

func sorted(xs []float64) []float64 {
	s := slices.Clone(xs)
	slices.Sort(s)

	return s
}

// KthElement sorts a copy and indexes it.
func KthElement(xs []float64, k int) (float64, error) {
	if k < 0 || k >= len(xs) {
		return 0, fmt.Errorf("%w: rank %d outside [0, %d)", stats.ErrInvalidRange, k, len(xs))
	}

	return sorted(xs)[k], nil
}

// Median averages the two middle values of a sorted copy.
func Median(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, stats.ErrEmptyInput
	}

	s := sorted(xs)
	n := len(s)

	return (s[(n-1)/2] + s[n/2]) / 2, nil
}

// MedianLow returns the smaller middle value of a sorted copy.
func MedianLow(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, stats.ErrEmptyInput
	}

	return sorted(xs)[(len(xs)-1)/2], nil
}

// MedianHigh returns the larger middle value of a sorted copy.
func MedianHigh(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, stats.ErrEmptyInput
	}

	return sorted(xs)[len(xs)/2], nil
}

// MedianGrouped interpolates within the class holding the middle value.
func MedianGrouped(xs []float64, interval float64) (float64, error) {
	if len(xs) == 0 {
		return 0, stats.ErrEmptyInput
	}

	if !(interval > 0) || math.IsInf(interval, 0) {
		return 0, fmt.Errorf("%w: interval %v", stats.ErrInvalidRange, interval)
	}

	s := sorted(xs)
	n := len(s)

	if n == 1 {
		return s[0], nil
	}

	x := s[n/2]
	lo, _ := slices.BinarySearch(s, x)
	hi := lo
	for hi < n && s[hi] == x {
		hi++
	}

	lower := x - interval/2
	cf := float64(lo)
	f := float64(hi - lo)

	return lower + interval*(float64(n)/2-cf)/f, nil
}

// Mode counts every value and returns the first one to reach the top count.
func Mode(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, stats.ErrEmptyInput
	}

	counts := make(map[float64]int, len(xs))
	top := 0

	for _, x := range xs {
		counts[x]++
		top = max(top, counts[x])
	}

	for _, x := range xs {
		if counts[x] == top {
			return x, nil
		}
	}

	return xs[0], nil
}

// Mean delegates to gonum.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, stats.ErrEmptyInput
	}

	return stat.Mean(xs, nil), nil
}

// HarmonicMean delegates to gonum after checking the domain.
func HarmonicMean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, stats.ErrEmptyInput
	}

	for i, x := range xs {
		if !(x > 0) {
			return 0, fmt.Errorf("%w: element %d (%v) is not positive", stats.ErrDomain, i, x)
		}
	}

	return stat.HarmonicMean(xs, nil), nil
}

func spread(xs []float64, fn func([]float64, []float64) float64) (float64, error) {
	if len(xs) < minVariancePoints {
		return 0, fmt.Errorf("%w: got %d", stats.ErrInsufficientData, len(xs))
	}

	return fn(xs, nil), nil
}

// Variance delegates to gonum's unbiased estimator.
func Variance(xs []float64) (float64, error) { return spread(xs, stat.Variance) }

// PVariance delegates to gonum's population variance.
func PVariance(xs []float64) (float64, error) { return spread(xs, stat.PopVariance) }

// Stdev delegates to gonum's sample standard deviation.
func Stdev(xs []float64) (float64, error) { return spread(xs, stat.StdDev) }

// Pstdev delegates to gonum's population standard deviation.
func Pstdev(xs []float64) (float64, error) { return spread(xs, stat.PopStdDev) }

func plain(fn func([]float64) (float64, error)) Func {
	return func(xs []float64, _ kernels.Params) (float64, error) { return fn(xs) }
}

// ForKernel returns the reference computation matching a kernel name.
func ForKernel(name string) (Func, bool) {
	switch name {
	case "avg_float", "avg_int", "avg_uint":
		return plain(Mean), true
	case "harmonic_mean":
		return plain(HarmonicMean), true
	case "variance":
		return plain(Variance), true
	case "pvariance":
		return plain(PVariance), true
	case "stdev":
		return plain(Stdev), true
	case "pstdev":
		return plain(Pstdev), true
	case "median_float", "median_int", "median_uint",
		"median_float32", "median_int32", "median_uint32":
		return plain(Median), true
	case "median_low_float", "median_low_int", "median_low_uint",
		"median_low_float32", "median_low_int32", "median_low_uint32":
		return plain(MedianLow), true
	case "median_high_float", "median_high_int", "median_high_uint",
		"median_high_float32", "median_high_int32", "median_high_uint32":
		return plain(MedianHigh), true
	case "median_grouped":
		return func(xs []float64, p kernels.Params) (float64, error) {
			return MedianGrouped(xs, p.Interval)
		}, true
	case "kth_element", "kth_element_float", "kth_element_int", "kth_element_uint",
		"kth_element_float32", "kth_element_int32", "kth_element_uint32":
		return func(xs []float64, p kernels.Params) (float64, error) {
			return KthElement(xs, p.K)
		}, true
	case "mode_float", "mode_int", "mode_uint",
		"mode_float32", "mode_float64",
		"mode_int8", "mode_int16", "mode_int32", "mode_int64",
		"mode_uint8", "mode_uint16", "mode_uint32", "mode_uint64":
		return plain(Mode), true
	}

	return nil, false
}
