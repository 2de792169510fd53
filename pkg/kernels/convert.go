package kernels

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

const bitsPerByte = 8

// convert narrows a host sequence into domain T. Integer domains reject
// non-integral and out-of-range values with stats.ErrDomain; float32 accepts any
// value and rounds to nearest.
func convert[T stats.Number](xs []float64) ([]T, error) {
	out := make([]T, len(xs))
	integral := isInteger[T]()

	for i, v := range xs {
		if integral && !fitsInteger[T](v) {
			return nil, fmt.Errorf("%w: element %d (%v) is not representable as %T",
				stats.ErrDomain, i, v, out[0])
		}

		out[i] = T(v)
	}

	return out, nil
}

func isInteger[T stats.Number]() bool {
	var probe T = 1

	return probe/2 == 0
}

// fitsInteger reports whether v is an integral value within T's range.
func fitsInteger[T stats.Number](v float64) bool {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return false
	}

	var zero T

	bits := bitsPerByte * sizeOf[T]()

	if zero-1 < zero {
		limit := math.Ldexp(1, bits-1)

		return v >= -limit && v < limit
	}

	return v >= 0 && v < math.Ldexp(1, bits)
}

func sizeOf[T stats.Number]() int {
	var x T

	switch any(x).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int, uint:
		return strconv.IntSize / bitsPerByte
	default:
		return 8
	}
}
