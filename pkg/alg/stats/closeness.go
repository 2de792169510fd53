package stats

import "math"

// Default closeness tolerances. Floating results of the kernels agree with the
// reference implementation within RelTol relative difference; accumulation order
// may differ, so bit-exact equality is not part of the contract.
const (
	RelTol = 1e-9
	AbsTol = 0.0
)

// IsClose reports whether a and b are equal within the default tolerances.
func IsClose(a, b float64) bool {
	return IsCloseTol(a, b, RelTol, AbsTol)
}

// IsCloseTol reports whether |a-b| <= max(relTol*max(|a|, |b|), absTol).
// Equal infinities are close; NaN is never close to anything.
func IsCloseTol(a, b, relTol, absTol float64) bool {
	if a == b {
		return true
	}

	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}

	diff := math.Abs(a - b)

	return diff <= math.Abs(relTol*a) || diff <= math.Abs(relTol*b) || diff <= absTol
}
