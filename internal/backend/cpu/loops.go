package cpu

import (
	"cmp"

	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/parallel"
	"github.com/born-ml/binops/internal/tensor"
)

type integer interface {
	~uint8 | ~int8 | ~int16 | ~int32 | ~int64
}

type float interface {
	~float32 | ~float64
}

// run visits every position of d, splitting the range across goroutines.
// dense receives position ranges when all operands are contiguous; strided
// receives buffer offsets otherwise.
func (cpu *CPUBackend) run(d *iterator.Descriptor, dense func(start, end int), strided func(out, x, y int)) {
	n := d.NumElements()
	if d.Dense() {
		parallel.ForRange(n, dense, cpu.parallel)
		return
	}
	parallel.ForRange(n, func(start, end int) {
		d.Offsets(start, end, strided)
	}, cpu.parallel)
}

// mapBinary writes fn(x, y) to the destination for every position.
// T is the storage type of the compute dtype, R that of the result dtype.
func mapBinary[T, R tensor.Element](cpu *CPUBackend, d *iterator.Descriptor, fn func(x, y T) R) {
	out := tensor.Storage[R](d.Dest().Tensor)
	xs := tensor.Storage[T](d.Input(0).Tensor)
	ys := tensor.Storage[T](d.Input(1).Tensor)
	oo, xo, yo := d.Dest().Offset(), d.Input(0).Offset(), d.Input(1).Offset()

	cpu.run(d, func(start, end int) {
		for i := start; i < end; i++ {
			out[oo+i] = fn(xs[xo+i], ys[yo+i])
		}
	}, func(o, x, y int) {
		out[o] = fn(xs[x], ys[y])
	})
}

// mapInt computes an integer operation in int64 and wraps the result back to T.
func mapInt[T integer](cpu *CPUBackend, d *iterator.Descriptor, fn func(x, y int64) int64) {
	mapBinary(cpu, d, func(x, y T) T {
		return T(fn(int64(x), int64(y)))
	})
}

// mapFloat computes a floating operation in float64 and rounds to T.
func mapFloat[T float](cpu *CPUBackend, d *iterator.Descriptor, fn func(x, y float64) float64) {
	mapBinary(cpu, d, func(x, y T) T {
		return T(fn(float64(x), float64(y)))
	})
}

// mapHalf computes a Float16 or BFloat16 operation through float32.
func mapHalf(cpu *CPUBackend, d *iterator.Descriptor, fn func(x, y float64) float64) {
	dt := d.ComputeType()
	mapBinary(cpu, d, func(x, y uint16) uint16 {
		fx := float64(tensor.HalfToFloat32(dt, x))
		fy := float64(tensor.HalfToFloat32(dt, y))
		return tensor.Float32ToHalf(dt, float32(fn(fx, fy)))
	})
}

// arithmetic holds one operation for each dtype category.
type arithmetic struct {
	ints   func(x, y int64) int64
	floats func(x, y float64) float64
	bools  func(x, y bool) bool
}

// apply runs op over d in the descriptor's compute dtype.
func (cpu *CPUBackend) apply(name string, d *iterator.Descriptor, op arithmetic) error {
	switch d.ComputeType() {
	case tensor.Bool:
		if op.bools == nil {
			return tensor.Errorf(name, tensor.ErrUnsupportedOperation, "not implemented for %s", tensor.Bool)
		}
		mapBinary(cpu, d, op.bools)
	case tensor.Uint8:
		mapInt[uint8](cpu, d, op.ints)
	case tensor.Int8:
		mapInt[int8](cpu, d, op.ints)
	case tensor.Int16:
		mapInt[int16](cpu, d, op.ints)
	case tensor.Int32:
		mapInt[int32](cpu, d, op.ints)
	case tensor.Int64:
		mapInt[int64](cpu, d, op.ints)
	case tensor.Float16, tensor.BFloat16:
		mapHalf(cpu, d, op.floats)
	case tensor.Float32:
		mapFloat[float32](cpu, d, op.floats)
	case tensor.Float64:
		mapFloat[float64](cpu, d, op.floats)
	default:
		return tensor.Errorf(name, tensor.ErrUnsupportedOperation, "not implemented for %s", d.ComputeType())
	}
	return nil
}

// compareOrdered writes c's verdict for every position. NaN operands yield
// c.Unordered().
func compareOrdered[T integer | float](cpu *CPUBackend, d *iterator.Descriptor, c orderTest) {
	mapBinary(cpu, d, func(x, y T) bool {
		if x != x || y != y {
			return c.unordered
		}
		return c.holds(cmp.Compare(x, y))
	})
}

// orderTest caches a comparator's behaviour for the inner loop.
type orderTest struct {
	holds     func(order int) bool
	unordered bool
}

func boolOrder(x, y bool) int {
	switch {
	case x == y:
		return 0
	case y:
		return -1
	default:
		return 1
	}
}
