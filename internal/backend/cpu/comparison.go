package cpu

import (
	"cmp"

	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// Comparison kernels - compute in the promoted dtype, write Bool.

// comparison returns the kernel for comparator c.
func (cpu *CPUBackend) comparison(c dispatch.Comparator) dispatch.Kernel {
	test := orderTest{holds: c.Holds, unordered: c.Unordered()}
	name := c.Op().String()

	return func(d *iterator.Descriptor, _ ...tensor.Scalar) error {
		switch d.ComputeType() {
		case tensor.Bool:
			mapBinary(cpu, d, func(x, y bool) bool {
				return test.holds(boolOrder(x, y))
			})
		case tensor.Uint8:
			compareOrdered[uint8](cpu, d, test)
		case tensor.Int8:
			compareOrdered[int8](cpu, d, test)
		case tensor.Int16:
			compareOrdered[int16](cpu, d, test)
		case tensor.Int32:
			compareOrdered[int32](cpu, d, test)
		case tensor.Int64:
			compareOrdered[int64](cpu, d, test)
		case tensor.Float16, tensor.BFloat16:
			dt := d.ComputeType()
			mapBinary(cpu, d, func(x, y uint16) bool {
				fx, fy := tensor.HalfToFloat32(dt, x), tensor.HalfToFloat32(dt, y)
				if fx != fx || fy != fy {
					return test.unordered
				}
				return test.holds(cmp.Compare(fx, fy))
			})
		case tensor.Float32:
			compareOrdered[float32](cpu, d, test)
		case tensor.Float64:
			compareOrdered[float64](cpu, d, test)
		default:
			return tensor.Errorf(name, tensor.ErrUnsupportedOperation, "not implemented for %s", d.ComputeType())
		}
		return nil
	}
}
