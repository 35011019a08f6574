package cartography

import (
	"fmt"
	"math/bits"
)

// OverflowError is the panic value raised when a coordinate operation
// would leave the int64 range, or a distance sum the uint64 range.
type OverflowError struct {
	Op string // operation that overflowed, e.g. "Point2D.PeekShift"

	// A and B are the int64 operands of a coordinate addition.
	A, B int64

	// Distance marks an overflowing distance sum; DistA and DistB then
	// hold its uint64 operands and A and B are unused.
	Distance     bool
	DistA, DistB uint64
}

func (e *OverflowError) Error() string {
	if e.Distance {
		return fmt.Sprintf("cartography: %s: uint64 overflow summing distances %d and %d", e.Op, e.DistA, e.DistB)
	}
	return fmt.Sprintf("cartography: %s: integer overflow adding %d and %d", e.Op, e.A, e.B)
}

// checkedAdd returns a+b, panicking if the sum does not fit in an int64.
func checkedAdd(op string, a, b int64) int64 {
	s := a + b
	// Overflow happened iff both operands share a sign the sum does not.
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		panic(&OverflowError{Op: op, A: a, B: b})
	}
	return s
}

// absDiff returns |a-b| without going through a signed subtraction.
func absDiff(a, b int64) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}

// sumDistances adds unsigned per-axis distances and panics if the total
// does not fit in a uint64, which needs at least two axes spanning most
// of the int64 range.
func sumDistances(op string, parts ...uint64) uint64 {
	var total uint64
	for _, p := range parts {
		sum, carry := bits.Add64(total, p, 0)
		if carry != 0 {
			panic(&OverflowError{Op: op, Distance: true, DistA: total, DistB: p})
		}
		total = sum
	}
	return total
}
