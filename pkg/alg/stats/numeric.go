package stats

import "golang.org/x/exp/constraints"

// Signed is any signed integer domain.
type Signed interface {
	constraints.Signed
}

// Unsigned is any unsigned integer domain.
type Unsigned interface {
	constraints.Unsigned
}

// Integer is any integer domain.
type Integer interface {
	constraints.Integer
}

// Float is any floating-point domain.
type Float interface {
	constraints.Float
}

// Number is any numeric domain a kernel can be instantiated over.
type Number interface {
	constraints.Integer | constraints.Float
}
