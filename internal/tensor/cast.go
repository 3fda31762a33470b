package tensor

import "fmt"

// readAt loads the element at buffer offset off as a Scalar of the tensor's category.
func readAt(r *RawTensor, off int) Scalar {
	switch r.dtype {
	case Bool:
		return BoolScalar(Storage[bool](r)[off])
	case Uint8:
		return IntScalar(int64(Storage[uint8](r)[off]))
	case Int8:
		return IntScalar(int64(Storage[int8](r)[off]))
	case Int16:
		return IntScalar(int64(Storage[int16](r)[off]))
	case Int32:
		return IntScalar(int64(Storage[int32](r)[off]))
	case Int64:
		return IntScalar(Storage[int64](r)[off])
	case Float16, BFloat16:
		return FloatScalar(float64(HalfToFloat32(r.dtype, Storage[uint16](r)[off])))
	case Float32:
		return FloatScalar(float64(Storage[float32](r)[off]))
	case Float64:
		return FloatScalar(Storage[float64](r)[off])
	default:
		panic(fmt.Sprintf("readAt: unsupported dtype %v", r.dtype))
	}
}

// writeAt stores s at buffer offset off with C-style conversion: bools become
// 0/1, floats truncate toward zero into integers, and integers wrap.
func writeAt(r *RawTensor, off int, s Scalar) {
	switch r.dtype {
	case Bool:
		Storage[bool](r)[off] = s.Bool()
	case Uint8:
		Storage[uint8](r)[off] = uint8(s.Int())
	case Int8:
		Storage[int8](r)[off] = int8(s.Int())
	case Int16:
		Storage[int16](r)[off] = int16(s.Int())
	case Int32:
		Storage[int32](r)[off] = int32(s.Int())
	case Int64:
		Storage[int64](r)[off] = s.Int()
	case Float16, BFloat16:
		Storage[uint16](r)[off] = Float32ToHalf(r.dtype, float32(s.Float()))
	case Float32:
		Storage[float32](r)[off] = float32(s.Float())
	case Float64:
		Storage[float64](r)[off] = s.Float()
	default:
		panic(fmt.Sprintf("writeAt: unsupported dtype %v", r.dtype))
	}
}

// copyInto copies src into dst element by element, converting dtypes.
// Shapes must match; both tensors may be strided.
func copyInto(dst, src *RawTensor) {
	srcOffsets := make([]int, 0, src.NumElements())
	forEachOffset(src.shape, src.stride, src.offset, func(_, off int) {
		srcOffsets = append(srcOffsets, off)
	})
	if dst.dtype == src.dtype {
		copySameType(dst, src, srcOffsets)
		return
	}
	forEachOffset(dst.shape, dst.stride, dst.offset, func(pos, off int) {
		writeAt(dst, off, readAt(src, srcOffsets[pos]))
	})
}

func copySameType(dst, src *RawTensor, srcOffsets []int) {
	switch dst.dtype {
	case Bool:
		copyTyped[bool](dst, src, srcOffsets)
	case Uint8:
		copyTyped[uint8](dst, src, srcOffsets)
	case Int8:
		copyTyped[int8](dst, src, srcOffsets)
	case Int16:
		copyTyped[int16](dst, src, srcOffsets)
	case Int32:
		copyTyped[int32](dst, src, srcOffsets)
	case Int64:
		copyTyped[int64](dst, src, srcOffsets)
	case Float16, BFloat16:
		copyTyped[uint16](dst, src, srcOffsets)
	case Float32:
		copyTyped[float32](dst, src, srcOffsets)
	case Float64:
		copyTyped[float64](dst, src, srcOffsets)
	}
}

func copyTyped[T Element](dst, src *RawTensor, srcOffsets []int) {
	d, s := Storage[T](dst), Storage[T](src)
	forEachOffset(dst.shape, dst.stride, dst.offset, func(pos, off int) {
		d[off] = s[srcOffsets[pos]]
	})
}

// Cast returns a fresh contiguous tensor holding r converted to dtype.
// The result is never a wrapped number.
func Cast(r *RawTensor, dtype DataType) (*RawTensor, error) {
	out, err := NewRaw(r.shape, dtype, r.device)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	copyInto(out, r)
	return out, nil
}

// CopyInto writes src into dst, converting to dst's dtype.
func CopyInto(dst, src *RawTensor) error {
	if !dst.shape.Equal(src.shape) {
		return Errorf("copy", ErrShapeMismatch, "destination shape %v does not match source shape %v", dst.shape, src.shape)
	}
	copyInto(dst, src)
	return nil
}
