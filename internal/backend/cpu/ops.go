package cpu

import (
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// alphaArg returns the alpha passed to add and sub, defaulting to 1.
func alphaArg(extra []tensor.Scalar) tensor.Scalar {
	if len(extra) == 0 {
		return tensor.IntScalar(1)
	}
	return extra[0]
}

// add computes out = x + alpha*y.
func (cpu *CPUBackend) add(d *iterator.Descriptor, extra ...tensor.Scalar) error {
	alpha := alphaArg(extra)
	if cpu.addFloat64(d, alpha.Float()) {
		return nil
	}
	ai, af, ab := alpha.Int(), alpha.Float(), alpha.Bool()
	return cpu.apply("add", d, arithmetic{
		ints:   func(x, y int64) int64 { return x + y*ai },
		floats: func(x, y float64) float64 { return x + y*af },
		bools:  func(x, y bool) bool { return x || (y && ab) },
	})
}

// sub computes out = x - alpha*y. Bool inputs never reach this kernel.
func (cpu *CPUBackend) sub(d *iterator.Descriptor, extra ...tensor.Scalar) error {
	alpha := alphaArg(extra)
	if cpu.addFloat64(d, -alpha.Float()) {
		return nil
	}
	ai, af := alpha.Int(), alpha.Float()
	return cpu.apply("sub", d, arithmetic{
		ints:   func(x, y int64) int64 { return x - y*ai },
		floats: func(x, y float64) float64 { return x - y*af },
	})
}

// mul computes out = x * y.
func (cpu *CPUBackend) mul(d *iterator.Descriptor, _ ...tensor.Scalar) error {
	if cpu.mulFloat64(d) {
		return nil
	}
	return cpu.apply("mul", d, arithmetic{
		ints:   func(x, y int64) int64 { return x * y },
		floats: func(x, y float64) float64 { return x * y },
		bools:  func(x, y bool) bool { return x && y },
	})
}

// div computes out = x / y. Integer and bool division truncates toward zero
// and fails before writing anything if any divisor is zero.
func (cpu *CPUBackend) div(d *iterator.Descriptor, _ ...tensor.Scalar) error {
	if d.ComputeType().IsIntegral(true) && d.NumElements() > 0 && hasZero(d.Input(1).Tensor) {
		return tensor.Errorf("div", tensor.ErrDivisionByZero, "divisor contains zero for %s operands", d.ComputeType())
	}
	return cpu.apply("div", d, arithmetic{
		ints:   func(x, y int64) int64 { return x / y },
		floats: func(x, y float64) float64 { return x / y },
		bools:  func(x, _ bool) bool { return x },
	})
}
