package cpu

import (
	"math"

	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// atan2 computes out = atan2(x, y) on floating operands.
func (cpu *CPUBackend) atan2(d *iterator.Descriptor, _ ...tensor.Scalar) error {
	if !d.ComputeType().IsFloating() {
		return tensor.Errorf("atan2", tensor.ErrTypeMismatch, "expected floating operands, got %s", d.ComputeType())
	}
	return cpu.apply("atan2", d, arithmetic{floats: math.Atan2})
}
