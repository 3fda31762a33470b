package ops

import (
	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// Atan2 returns atan2(a, b). Integral and bool operands compute in
// tensor.DefaultFloat.
func (o *Dispatcher) Atan2(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("atan2", a, b); err != nil {
		return nil, err
	}
	return o.run("atan2", dispatch.OpAtan2, newConfig(a, b, iterator.FloatArithmetic), nil)
}

// Atan2Out writes atan2(a, b) into out and returns out.
func (o *Dispatcher) Atan2Out(out, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("atan2_out", out, a, b); err != nil {
		return nil, err
	}
	return o.run("atan2_out", dispatch.OpAtan2, outConfig(out, a, b, iterator.FloatArithmetic), nil)
}

// Atan2InPlace computes a = atan2(a, b) and returns a. a must be floating.
func (o *Dispatcher) Atan2InPlace(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.Atan2Out(a, a, b)
}

// boolOperands fails unless every tensor has Bool dtype.
func boolOperands(name string, operands ...*tensor.RawTensor) error {
	for _, t := range operands {
		if t.DType() != tensor.Bool {
			return tensor.Errorf(name, tensor.ErrTypeMismatch,
				"logical_xor is only supported for %s tensors, got %s", tensor.Bool, t.DType())
		}
	}
	return nil
}

// LogicalXor returns a != b elementwise. Both operands must be Bool.
func (o *Dispatcher) LogicalXor(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("logical_xor", a, b); err != nil {
		return nil, err
	}
	if err := boolOperands("logical_xor", a, b); err != nil {
		return nil, err
	}
	return o.run("logical_xor", dispatch.OpLogicalXor, newConfig(a, b, iterator.Logical), nil)
}

// LogicalXorOut writes a != b into out and returns out. All three tensors
// must be Bool.
func (o *Dispatcher) LogicalXorOut(out, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("logical_xor_out", out, a, b); err != nil {
		return nil, err
	}
	if err := boolOperands("logical_xor_out", out, a, b); err != nil {
		return nil, err
	}
	return o.run("logical_xor_out", dispatch.OpLogicalXor, outConfig(out, a, b, iterator.Logical), nil)
}

// LogicalXorInPlace computes a = a != b and returns a.
func (o *Dispatcher) LogicalXorInPlace(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.LogicalXorOut(a, a, b)
}
