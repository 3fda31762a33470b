// Package dispatch holds the kernel registration table that maps an
// operation and a device to the kernel that executes it.
package dispatch

import (
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// OpID identifies an elementwise binary operation.
type OpID int

// Registered operations.
const (
	OpAdd OpID = iota
	OpSub
	OpMul
	OpDiv
	OpAtan2
	OpLogicalXor
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	numOps
)

var opNames = [...]string{
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpAtan2:      "atan2",
	OpLogicalXor: "logical_xor",
	OpLt:         "lt",
	OpLe:         "le",
	OpGt:         "gt",
	OpGe:         "ge",
	OpEq:         "eq",
	OpNe:         "ne",
}

// AllOps returns every operation in declaration order.
func AllOps() []OpID {
	ops := make([]OpID, numOps)
	for i := range ops {
		ops[i] = OpID(i)
	}
	return ops
}

// Valid reports whether op is a known operation.
func (op OpID) Valid() bool {
	return op >= 0 && op < numOps
}

// String returns the operation name.
func (op OpID) String() string {
	if !op.Valid() {
		return "unknown"
	}
	return opNames[op]
}

// ParseOpID returns the operation with the given name.
func ParseOpID(name string) (OpID, bool) {
	for i, n := range opNames {
		if n == name {
			return OpID(i), true
		}
	}
	return 0, false
}

// IsComparison reports whether op yields a Bool result from an ordering or equality test.
func (op OpID) IsComparison() bool {
	return op >= OpLt && op <= OpNe
}

// Kernel performs one operation over an aligned descriptor, writing
// d.Dest(). Add and sub receive alpha as their only extra argument.
type Kernel func(d *iterator.Descriptor, extra ...tensor.Scalar) error
