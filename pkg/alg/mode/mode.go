// Package mode finds the most frequent value of a sequence. One generic
// routine serves every numeric domain; the width-specific entry points in
// domains.go only instantiate it.
//
// Counting uses a sparse map keyed by value, so memory grows with the number of
// distinct values rather than the width of the domain. Floating-point values are
// compared by exact equality with no tolerance bucketing. NaN inputs are not
// supported and must be filtered by the caller.
package mode

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// ErrNoUniqueMode is returned by Unique when several values share the highest count.
var ErrNoUniqueMode = fmt.Errorf("no unique mode: %w", stats.ErrDomain)

func count[T comparable](xs []T) map[T]int {
	counts := make(map[T]int)

	for _, x := range xs {
		counts[x]++
	}

	return counts
}

// Mode returns the most frequent value of xs. When several values share the
// highest count, the one that occurs first in xs wins.
func Mode[T comparable](xs []T) (T, error) {
	var zero T

	if len(xs) == 0 {
		return zero, fmt.Errorf("mode: %w", stats.ErrEmptyInput)
	}

	counts := count(xs)

	best, bestCount := xs[0], 0

	for _, x := range xs {
		if c := counts[x]; c > bestCount {
			best, bestCount = x, c
		}
	}

	return best, nil
}

// Frequencies returns the count of every distinct value, iterating in the
// order values first occur in xs.
func Frequencies[T comparable](xs []T) *orderedmap.OrderedMap[T, int] {
	freq := orderedmap.New[T, int]()

	for _, x := range xs {
		if pair := freq.GetPair(x); pair != nil {
			pair.Value++

			continue
		}

		freq.Set(x, 1)
	}

	return freq
}

// Multimode returns every value sharing the highest count, in first-seen order.
// It returns an empty slice for empty input.
func Multimode[T comparable](xs []T) []T {
	freq := Frequencies(xs)

	bestCount := 0
	for pair := freq.Oldest(); pair != nil; pair = pair.Next() {
		bestCount = max(bestCount, pair.Value)
	}

	modes := make([]T, 0, 1)

	for pair := freq.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == bestCount {
			modes = append(modes, pair.Key)
		}
	}

	return modes
}

// Unique returns the mode of xs only when it is unique, failing with
// ErrNoUniqueMode when several values tie for the highest count.
func Unique[T comparable](xs []T) (T, error) {
	var zero T

	if len(xs) == 0 {
		return zero, fmt.Errorf("mode: %w", stats.ErrEmptyInput)
	}

	modes := Multimode(xs)
	if len(modes) > 1 {
		return zero, fmt.Errorf("%w: found %d equally common values", ErrNoUniqueMode, len(modes))
	}

	return modes[0], nil
}

// IsNoUniqueMode reports whether err was caused by a tie for the highest count.
func IsNoUniqueMode(err error) bool {
	return errors.Is(err, ErrNoUniqueMode)
}
