package dispersion

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// Running accumulates mean and variance over a stream using Welford's update,
// for callers that cannot hold the whole sequence. The zero value is ready to use.
type Running struct {
	count int
	mean  float64
	m2    float64
}

// NewRunning creates an accumulator pre-fed with xs.
func NewRunning[T stats.Number](xs []T) *Running {
	r := &Running{}

	for _, v := range xs {
		r.Push(float64(v))
	}

	return r
}

// Push feeds one observation.
func (r *Running) Push(x float64) {
	r.count++

	delta := x - r.mean
	r.mean += delta / float64(r.count)
	r.m2 += delta * (x - r.mean)
}

// Count returns the number of observations pushed so far.
func (r *Running) Count() int {
	return r.count
}

// Mean returns the running mean.
func (r *Running) Mean() (float64, error) {
	if r.count == 0 {
		return 0, fmt.Errorf("running mean: %w", stats.ErrEmptyInput)
	}

	return r.mean, nil
}

// Variance returns the running sample variance.
func (r *Running) Variance() (float64, error) {
	err := checkVariance("running variance", r.count)
	if err != nil {
		return 0, err
	}

	return r.m2 / float64(r.count-1), nil
}

// PVariance returns the running population variance.
func (r *Running) PVariance() (float64, error) {
	err := checkVariance("running pvariance", r.count)
	if err != nil {
		return 0, err
	}

	return r.m2 / float64(r.count), nil
}

// Stdev returns the running sample standard deviation.
func (r *Running) Stdev() (float64, error) {
	v, err := r.Variance()
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}

// Pstdev returns the running population standard deviation.
func (r *Running) Pstdev() (float64, error) {
	v, err := r.PVariance()
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}
