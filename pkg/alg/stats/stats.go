// Package stats defines the contract shared by the statistics kernels:
// the error taxonomy, the numeric domains kernels are instantiated over, and
// the relative tolerance under which floating results are considered equal to
// the reference implementation.
package stats

import "errors"

// Sentinel error kinds. Kernels wrap exactly one of them with operation context,
// so callers match with errors.Is or classify with KindOf.
var (
	ErrEmptyInput       = errors.New("empty input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidRange     = errors.New("invalid range")
	ErrDomain           = errors.New("domain error")
)

// Kind classifies a kernel failure.
type Kind int

// Failure kinds.
const (
	KindNone Kind = iota
	KindEmptyInput
	KindInsufficientData
	KindInvalidRange
	KindDomain
	KindUnknown
)

var kindNames = [...]string{
	KindNone:             "none",
	KindEmptyInput:       "empty_input",
	KindInsufficientData: "insufficient_data",
	KindInvalidRange:     "invalid_range",
	KindDomain:           "domain_error",
	KindUnknown:          "unknown",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < KindNone || k > KindUnknown {
		return kindNames[KindUnknown]
	}

	return kindNames[k]
}

// KindOf classifies err. It returns KindNone for a nil error and KindUnknown
// for errors that do not wrap one of the sentinel kinds.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrInsufficientData):
		return KindInsufficientData
	case errors.Is(err, ErrInvalidRange):
		return KindInvalidRange
	case errors.Is(err, ErrDomain):
		return KindDomain
	default:
		return KindUnknown
	}
}
