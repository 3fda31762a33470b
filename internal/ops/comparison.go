package ops

import (
	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// Comparison implements every calling form of one comparison operation.
// Instances differ only in their Comparator.
//
// Unlike arithmetic, comparisons check that scalar operands are
// representable in the other operand's dtype, so 1000 is never silently
// compared against an int8 tensor.
type Comparison struct {
	dispatcher *Dispatcher
	cmp        dispatch.Comparator
}

// Lt returns the less-than comparison.
func (o *Dispatcher) Lt() *Comparison { return o.comparisons[dispatch.OpLt] }

// Le returns the less-or-equal comparison.
func (o *Dispatcher) Le() *Comparison { return o.comparisons[dispatch.OpLe] }

// Gt returns the greater-than comparison.
func (o *Dispatcher) Gt() *Comparison { return o.comparisons[dispatch.OpGt] }

// Ge returns the greater-or-equal comparison.
func (o *Dispatcher) Ge() *Comparison { return o.comparisons[dispatch.OpGe] }

// Eq returns the equality comparison.
func (o *Dispatcher) Eq() *Comparison { return o.comparisons[dispatch.OpEq] }

// Ne returns the inequality comparison.
func (o *Dispatcher) Ne() *Comparison { return o.comparisons[dispatch.OpNe] }

// Compare returns the comparison for op.
func (o *Dispatcher) Compare(op dispatch.OpID) (*Comparison, error) {
	c, ok := o.comparisons[op]
	if !ok {
		return nil, tensor.Errorf(op.String(), tensor.ErrUnsupportedOperation, "%s is not a comparison", op)
	}
	return c, nil
}

// Op returns the operation this comparison performs.
func (c *Comparison) Op() dispatch.OpID {
	return c.cmp.Op()
}

func (c *Comparison) name(suffix string) string {
	return c.cmp.Op().String() + suffix
}

// checkZeroDim verifies that when exactly one operand is 0-dim and the
// dtypes differ, its value is representable in the other operand's dtype.
func checkZeroDim(name string, a, b *tensor.RawTensor) error {
	if a.DType() == b.DType() || (a.Dim() == 0) == (b.Dim() == 0) {
		return nil
	}
	zero, other := a, b
	if b.Dim() == 0 {
		zero, other = b, a
	}
	item, err := zero.Item()
	if err != nil {
		return tensor.Errorf(name, tensor.ErrConversion, "%v", err)
	}
	return tensor.WithOp(name, tensor.CheckConvert(item, other.DType()))
}

// Out writes the comparison of a and b into out, which must be Bool.
func (c *Comparison) Out(out, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	name := c.name("_out")
	if err := requireOperands(name, out, a, b); err != nil {
		return nil, err
	}
	if out.DType() != tensor.Bool {
		return nil, tensor.Errorf(name, tensor.ErrTypeMismatch,
			"expected %s output for %s, got %s", tensor.Bool, c.cmp.Op(), out.DType())
	}
	if err := checkZeroDim(name, a, b); err != nil {
		return nil, err
	}
	return c.dispatcher.run(name, c.cmp.Op(), outConfig(out, a, b, iterator.Comparison), nil)
}

// New returns a fresh Bool tensor holding the comparison of a and b.
func (c *Comparison) New(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	name := c.name("")
	if err := requireOperands(name, a, b); err != nil {
		return nil, err
	}
	if err := checkZeroDim(name, a, b); err != nil {
		return nil, err
	}
	return c.dispatcher.run(name, c.cmp.Op(), newConfig(a, b, iterator.Comparison), nil)
}

// InPlace overwrites a with the comparison of a and b, stored as 0 or 1 in
// a's dtype. a and b must have the same dtype.
func (c *Comparison) InPlace(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	name := c.name("_")
	if err := requireOperands(name, a, b); err != nil {
		return nil, err
	}
	if a.DType() != b.DType() {
		return nil, tensor.Errorf(name, tensor.ErrTypeMismatch,
			"expected both operands to have the same dtype, got %s and %s", a.DType(), b.DType())
	}
	return c.inPlace(name, a, b)
}

func (c *Comparison) inPlace(name string, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return c.dispatcher.run(name, c.cmp.Op(), outConfig(a, a, b, iterator.Comparison), nil)
}

// wrap converts s into a 0-dim tensor after checking it fits a's dtype.
func (c *Comparison) wrap(name string, a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	if err := requireOperands(name, a); err != nil {
		return nil, err
	}
	w, err := tensor.WrapScalarChecked(s, a)
	if err != nil {
		return nil, tensor.WithOp(name, err)
	}
	return w, nil
}

// ScalarOut writes the comparison of a and s into out.
func (c *Comparison) ScalarOut(out, a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	w, err := c.wrap(c.name("_out"), a, s)
	if err != nil {
		return nil, err
	}
	return c.Out(out, a, w)
}

// Scalar returns a fresh Bool tensor holding the comparison of a and s.
func (c *Comparison) Scalar(a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	w, err := c.wrap(c.name(""), a, s)
	if err != nil {
		return nil, err
	}
	return c.New(a, w)
}

// ScalarInPlace overwrites a with the comparison of a and s. The dtypes of
// a and s need not match; only the range of s is checked.
func (c *Comparison) ScalarInPlace(a *tensor.RawTensor, s tensor.Scalar) (*tensor.RawTensor, error) {
	name := c.name("_")
	w, err := c.wrap(name, a, s)
	if err != nil {
		return nil, err
	}
	return c.inPlace(name, a, w)
}
