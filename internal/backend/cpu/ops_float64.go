package cpu

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/parallel"
	"github.com/born-ml/binops/internal/tensor"
)

// float64Slices returns the dense destination and input slices of d.
func float64Slices(d *iterator.Descriptor) (dst, a, b []float64) {
	n := d.NumElements()
	slice := func(op iterator.Operand, length int) []float64 {
		off := op.Offset()
		return tensor.Storage[float64](op.Tensor)[off : off+length]
	}
	return slice(d.Dest(), n), slice(d.Input(0), n), slice(d.Input(1), d.Input(1).Tensor.NumElements())
}

// vectorizable reports whether d can use the vecmath float64 kernels.
func (cpu *CPUBackend) vectorizable(d *iterator.Descriptor) bool {
	return cpu.vectorize && d.ComputeType() == tensor.Float64 && d.NumElements() > 0
}

// addFloat64 computes dst = a + b*scale with vecmath. It returns false when
// d is not eligible and nothing was written.
//
// vecmath.AddMulBlock computes (a+b)*scale, so other scales go through a
// scaled copy of b. The copy also keeps dst = a - a (dst aliasing b) correct.
func (cpu *CPUBackend) addFloat64(d *iterator.Descriptor, scale float64) bool {
	if !cpu.vectorizable(d) || !d.Dense() {
		return false
	}
	dst, a, b := float64Slices(d)
	parallel.ForRange(len(dst), func(start, end int) {
		if scale == 1 {
			vecmath.AddBlock(dst[start:end], a[start:end], b[start:end])
			return
		}
		scaled := make([]float64, end-start)
		vecmath.ScaleBlock(scaled, b[start:end], scale)
		vecmath.AddBlock(dst[start:end], a[start:end], scaled)
	}, cpu.parallel)
	return true
}

// mulFloat64 computes dst = a * b with vecmath, including the case of a
// broadcast scalar right operand. It returns false when d is not eligible.
func (cpu *CPUBackend) mulFloat64(d *iterator.Descriptor) bool {
	if !cpu.vectorizable(d) {
		return false
	}
	switch {
	case d.Dense():
		dst, a, b := float64Slices(d)
		parallel.ForRange(len(dst), func(start, end int) {
			vecmath.MulBlock(dst[start:end], a[start:end], b[start:end])
		}, cpu.parallel)
	case d.DenseScalarRight():
		dst, a, b := float64Slices(d)
		scalar := b[0]
		parallel.ForRange(len(dst), func(start, end int) {
			vecmath.ScaleBlock(dst[start:end], a[start:end], scalar)
		}, cpu.parallel)
	default:
		return false
	}
	return true
}
