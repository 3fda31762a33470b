// Package iterator aligns the operands of an elementwise binary operation.
//
// Build turns two inputs and an optional output into a Descriptor: the
// broadcast shape, the promoted compute dtype, the resolved output, and
// per-operand strides over that shape. Kernels only ever see Descriptors.
package iterator

import (
	"github.com/born-ml/binops/internal/tensor"
)

// Mode selects how the compute and result dtypes are derived from the inputs.
type Mode int

// Supported modes.
const (
	// Arithmetic computes in the promoted dtype and returns it.
	Arithmetic Mode = iota
	// FloatArithmetic is Arithmetic with integral and bool inputs promoted to tensor.DefaultFloat.
	FloatArithmetic
	// Comparison computes in the promoted dtype and returns Bool.
	Comparison
	// Logical computes in Bool and returns Bool.
	Logical
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Arithmetic:
		return "arithmetic"
	case FloatArithmetic:
		return "float_arithmetic"
	case Comparison:
		return "comparison"
	case Logical:
		return "logical"
	default:
		return "unknown"
	}
}

// Config describes one binary operation to align.
type Config struct {
	Output       *tensor.RawTensor // Optional caller-provided output
	Left, Right  *tensor.RawTensor
	CheckOverlap bool // Reject outputs that unsafely alias an input
	Mode         Mode
}

// Operand is a tensor viewed over the descriptor's shape.
type Operand struct {
	Tensor  *tensor.RawTensor
	Strides []int // Broadcast strides, one per descriptor dimension
}

// Offset returns the buffer offset of the operand's first element.
func (o Operand) Offset() int {
	return o.Tensor.Offset()
}

// Descriptor is a validated execution plan for one binary operation.
type Descriptor struct {
	computeType tensor.DataType
	resultType  tensor.DataType
	shape       tensor.Shape
	device      tensor.Device

	dest   Operand    // Kernel destination, always resultType
	inputs [2]Operand // Inputs in computeType
	output *tensor.RawTensor
}

// Build validates cfg and produces a Descriptor.
//
// Checks, in order: device agreement, broadcast shape, dtype promotion,
// output dtype castability, and (when requested) memory overlap between the
// output and the inputs. Inputs whose dtype differs from the compute dtype
// are converted into fresh tensors, as are inputs sharing storage with the
// output in a layout the kernel could overwrite before reading; a caller
// output whose dtype differs from the result dtype is written through a
// staging tensor by Finish.
func Build(cfg Config) (*Descriptor, error) {
	left, right, out := cfg.Left, cfg.Right, cfg.Output
	if left == nil || right == nil {
		return nil, tensor.Errorf("", tensor.ErrUnsupportedOperation, "binary operation requires two operands")
	}

	device, err := commonDevice(out, left, right)
	if err != nil {
		return nil, err
	}

	shape, _, err := tensor.BroadcastShapes(left.Shape(), right.Shape())
	if err != nil {
		return nil, tensor.Errorf("", tensor.ErrShapeMismatch, "%v", err)
	}
	if out != nil && !out.Shape().Equal(shape) {
		return nil, tensor.Errorf("", tensor.ErrShapeMismatch,
			"output with shape %v doesn't match the broadcast shape %v", out.Shape(), shape)
	}

	computeType, resultType, err := resolveTypes(cfg.Mode, left, right)
	if err != nil {
		return nil, err
	}

	if out != nil && out.DType() != resultType && !tensor.CanCast(resultType, out.DType()) {
		return nil, tensor.Errorf("", tensor.ErrTypeMismatch,
			"result type %s can't be cast to the desired output type %s", resultType, out.DType())
	}

	if cfg.CheckOverlap && out != nil {
		if err := checkOverlap(out, left, right); err != nil {
			return nil, err
		}
	}

	d := &Descriptor{
		computeType: computeType,
		resultType:  resultType,
		shape:       shape,
		device:      device,
	}

	for i, in := range [2]*tensor.RawTensor{left, right} {
		if in.DType() != computeType {
			if in, err = tensor.Cast(in, computeType); err != nil {
				return nil, err
			}
		}
		if out != nil && unsafeAlias(out, in) {
			in = in.Copy()
		}
		strides, err := tensor.BroadcastStrides(in.Shape(), in.Strides(), shape)
		if err != nil {
			return nil, tensor.Errorf("", tensor.ErrShapeMismatch, "%v", err)
		}
		d.inputs[i] = Operand{Tensor: in, Strides: strides}
	}

	if out == nil {
		if out, err = tensor.NewRaw(shape, resultType, device); err != nil {
			return nil, err
		}
	}
	d.output = out

	dest := out
	if out.DType() != resultType {
		if dest, err = tensor.NewRaw(shape, resultType, device); err != nil {
			return nil, err
		}
	}
	d.dest = Operand{Tensor: dest, Strides: dest.Strides()}

	return d, nil
}

// resolveTypes returns the compute and result dtypes for mode.
func resolveTypes(mode Mode, left, right *tensor.RawTensor) (compute, result tensor.DataType, err error) {
	if mode == Logical {
		return tensor.Bool, tensor.Bool, nil
	}
	compute, err = tensor.ResultType(left, right)
	if err != nil {
		return compute, result, err
	}
	switch mode {
	case FloatArithmetic:
		if !compute.IsFloating() {
			compute = tensor.DefaultFloat
		}
		return compute, compute, nil
	case Comparison:
		return compute, tensor.Bool, nil
	default:
		return compute, compute, nil
	}
}

// commonDevice returns the device all operands live on. 0-dim CPU tensors,
// wrapped numbers included, may join operands on any device.
func commonDevice(operands ...*tensor.RawTensor) (tensor.Device, error) {
	device, found := tensor.CPU, false
	for _, t := range operands {
		if t == nil || (t.Dim() == 0 && t.Device() == tensor.CPU) {
			continue
		}
		if !found {
			device, found = t.Device(), true
			continue
		}
		if t.Device() != device {
			return device, tensor.Errorf("", tensor.ErrDeviceMismatch,
				"expected all tensors to be on the same device, but found %s and %s", device, t.Device())
		}
	}
	return device, nil
}

// ComputeType returns the dtype the kernel computes in.
func (d *Descriptor) ComputeType() tensor.DataType { return d.computeType }

// ResultType returns the dtype the kernel writes.
func (d *Descriptor) ResultType() tensor.DataType { return d.resultType }

// Shape returns the broadcast iteration shape.
func (d *Descriptor) Shape() tensor.Shape { return d.shape }

// Device returns the device used to select a kernel.
func (d *Descriptor) Device() tensor.Device { return d.device }

// NumElements returns the number of positions the kernel visits.
func (d *Descriptor) NumElements() int { return d.shape.NumElements() }

// Output returns the resolved output: the caller's tensor or a fresh one.
func (d *Descriptor) Output() *tensor.RawTensor { return d.output }

// Dest returns the operand the kernel writes to.
func (d *Descriptor) Dest() Operand { return d.dest }

// Input returns input i (0 = left, 1 = right) in the compute dtype.
func (d *Descriptor) Input(i int) Operand { return d.inputs[i] }

// Dense reports whether the destination and both inputs are contiguous over
// the full shape, so kernels may walk plain slices.
func (d *Descriptor) Dense() bool {
	return d.dense(d.dest, d.inputs[0], d.inputs[1])
}

// DenseScalarRight reports whether the destination and left input are dense
// and the right input is a single element broadcast over the whole shape.
func (d *Descriptor) DenseScalarRight() bool {
	return d.inputs[1].Tensor.NumElements() == 1 && d.dense(d.dest, d.inputs[0])
}

func (d *Descriptor) dense(ops ...Operand) bool {
	contiguous := d.shape.ComputeStrides()
	for _, op := range ops {
		if !sameStrides(d.shape, op.Strides, contiguous) {
			return false
		}
	}
	return true
}

func sameStrides(shape tensor.Shape, a, b []int) bool {
	for i, dim := range shape {
		if dim != 1 && a[i] != b[i] {
			return false
		}
	}
	return true
}

// Finish copies a staged result into the caller's output when their dtypes
// differ. Kernels call it after writing Dest.
func (d *Descriptor) Finish() error {
	if d.dest.Tensor == d.output {
		return nil
	}
	return tensor.CopyInto(d.output, d.dest.Tensor)
}

// Offsets calls fn for every position in [start, end) with the buffer
// offsets of the destination, left and right operands.
func (d *Descriptor) Offsets(start, end int, fn func(out, a, b int)) {
	if start >= end {
		return
	}
	ndim := len(d.shape)
	sd, sa, sb := d.dest.Strides, d.inputs[0].Strides, d.inputs[1].Strides

	coord := make([]int, ndim)
	offD, offA, offB := d.dest.Offset(), d.inputs[0].Offset(), d.inputs[1].Offset()
	rem := start
	for i := ndim - 1; i >= 0; i-- {
		coord[i] = rem % d.shape[i]
		rem /= d.shape[i]
		offD += coord[i] * sd[i]
		offA += coord[i] * sa[i]
		offB += coord[i] * sb[i]
	}

	for pos := start; pos < end; pos++ {
		fn(offD, offA, offB)
		for i := ndim - 1; i >= 0; i-- {
			coord[i]++
			offD += sd[i]
			offA += sa[i]
			offB += sb[i]
			if coord[i] < d.shape[i] {
				break
			}
			offD -= coord[i] * sd[i]
			offA -= coord[i] * sa[i]
			offB -= coord[i] * sb[i]
			coord[i] = 0
		}
	}
}
