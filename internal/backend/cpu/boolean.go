package cpu

import (
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// logicalXor computes out = x != y over Bool operands.
func (cpu *CPUBackend) logicalXor(d *iterator.Descriptor, _ ...tensor.Scalar) error {
	if d.ComputeType() != tensor.Bool {
		return tensor.Errorf("logical_xor", tensor.ErrTypeMismatch, "expected %s operands, got %s", tensor.Bool, d.ComputeType())
	}
	mapBinary(cpu, d, func(x, y bool) bool { return x != y })
	return nil
}
