package ops

import (
	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// alphaCheck validates alpha against the result dtype of add or sub.
// Sub passes includeBool=false, so a bool alpha never scales a subtraction.
func alphaCheck(alpha tensor.Scalar, includeBool bool) checkFunc {
	return func(d *iterator.Descriptor) error {
		dtype := d.ResultType()
		if alpha.IsBoolean() && dtype != tensor.Bool {
			return tensor.Errorf("", tensor.ErrTypeMismatch, "boolean alpha only supported for boolean results")
		}
		if !dtype.IsFloating() && !alpha.IsIntegral(includeBool) {
			return tensor.Errorf("", tensor.ErrTypeMismatch, "alpha must not be floating point for integral tensors")
		}
		return nil
	}
}

// subCheck rejects bool operands before any descriptor is built.
func subCheck(name string, a, b *tensor.RawTensor) error {
	aBool, bBool := a.DType() == tensor.Bool, b.DType() == tensor.Bool
	switch {
	case aBool && bBool:
		return tensor.Errorf(name, tensor.ErrUnsupportedOperation,
			"subtraction with two bool tensors is not supported; use logical_xor instead")
	case aBool || bBool:
		return tensor.Errorf(name, tensor.ErrUnsupportedOperation,
			"subtraction with a bool tensor is not supported; to invert a mask use logical_not instead")
	}
	return nil
}

// Add returns a + alpha*b.
func (o *Dispatcher) Add(a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	if err := requireOperands("add", a, b); err != nil {
		return nil, err
	}
	return o.run("add", dispatch.OpAdd, newConfig(a, b, iterator.Arithmetic), alphaCheck(alpha, true), alpha)
}

// AddOut writes a + alpha*b into out and returns out.
func (o *Dispatcher) AddOut(out, a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	if err := requireOperands("add_out", out, a, b); err != nil {
		return nil, err
	}
	return o.run("add_out", dispatch.OpAdd, outConfig(out, a, b, iterator.Arithmetic), alphaCheck(alpha, true), alpha)
}

// AddInPlace computes a += alpha*b and returns a.
func (o *Dispatcher) AddInPlace(a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.AddOut(a, a, b, alpha)
}

// AddScalar returns a + alpha*s. The scalar is not range-checked.
func (o *Dispatcher) AddScalar(a *tensor.RawTensor, s, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.Add(a, tensor.WrapScalar(s), alpha)
}

// AddScalarInPlace computes a += alpha*s and returns a.
func (o *Dispatcher) AddScalarInPlace(a *tensor.RawTensor, s, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.AddInPlace(a, tensor.WrapScalar(s), alpha)
}

// Sub returns a - alpha*b. Bool operands are rejected.
func (o *Dispatcher) Sub(a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	if err := requireOperands("sub", a, b); err != nil {
		return nil, err
	}
	if err := subCheck("sub", a, b); err != nil {
		return nil, err
	}
	return o.run("sub", dispatch.OpSub, newConfig(a, b, iterator.Arithmetic), alphaCheck(alpha, false), alpha)
}

// SubOut writes a - alpha*b into out and returns out.
func (o *Dispatcher) SubOut(out, a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	if err := requireOperands("sub_out", out, a, b); err != nil {
		return nil, err
	}
	if err := subCheck("sub_out", a, b); err != nil {
		return nil, err
	}
	return o.run("sub_out", dispatch.OpSub, outConfig(out, a, b, iterator.Arithmetic), alphaCheck(alpha, false), alpha)
}

// SubInPlace computes a -= alpha*b and returns a.
func (o *Dispatcher) SubInPlace(a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.SubOut(a, a, b, alpha)
}

// SubScalar returns a - alpha*s.
func (o *Dispatcher) SubScalar(a *tensor.RawTensor, s, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.Sub(a, tensor.WrapScalar(s), alpha)
}

// SubScalarInPlace computes a -= alpha*s and returns a.
func (o *Dispatcher) SubScalarInPlace(a *tensor.RawTensor, s, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.SubInPlace(a, tensor.WrapScalar(s), alpha)
}

// Rsub returns b - alpha*a.
func (o *Dispatcher) Rsub(a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.Sub(b, a, alpha)
}

// RsubScalar returns s - alpha*a.
func (o *Dispatcher) RsubScalar(a *tensor.RawTensor, s, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	return o.Sub(tensor.WrapScalar(s), a, alpha)
}

// Mul returns a * b.
func (o *Dispatcher) Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("mul", a, b); err != nil {
		return nil, err
	}
	return o.run("mul", dispatch.OpMul, newConfig(a, b, iterator.Arithmetic), nil)
}

// MulOut writes a * b into out and returns out.
func (o *Dispatcher) MulOut(out, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("mul_out", out, a, b); err != nil {
		return nil, err
	}
	return o.run("mul_out", dispatch.OpMul, outConfig(out, a, b, iterator.Arithmetic), nil)
}

// MulInPlace computes a *= b and returns a.
func (o *Dispatcher) MulInPlace(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.MulOut(a, a, b)
}

// MulScalar returns a * s.
func (o *Dispatcher) MulScalar(a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return o.Mul(a, tensor.WrapScalar(s))
}

// MulScalarInPlace computes a *= s and returns a.
func (o *Dispatcher) MulScalarInPlace(a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return o.MulInPlace(a, tensor.WrapScalar(s))
}

// Div returns a / b. Integral operands truncate toward zero and a zero
// divisor fails with tensor.ErrDivisionByZero.
func (o *Dispatcher) Div(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("div", a, b); err != nil {
		return nil, err
	}
	return o.run("div", dispatch.OpDiv, newConfig(a, b, iterator.Arithmetic), nil)
}

// DivOut writes a / b into out and returns out.
func (o *Dispatcher) DivOut(out, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireOperands("div_out", out, a, b); err != nil {
		return nil, err
	}
	return o.run("div_out", dispatch.OpDiv, outConfig(out, a, b, iterator.Arithmetic), nil)
}

// DivInPlace computes a /= b and returns a.
func (o *Dispatcher) DivInPlace(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.DivOut(a, a, b)
}

// DivScalar returns a / s.
func (o *Dispatcher) DivScalar(a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return o.Div(a, tensor.WrapScalar(s))
}

// DivScalarInPlace computes a /= s and returns a.
func (o *Dispatcher) DivScalarInPlace(a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	return o.DivInPlace(a, tensor.WrapScalar(s))
}
