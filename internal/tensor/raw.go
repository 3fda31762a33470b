package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// tensorBuffer is a reference-counted buffer shared by a tensor and its views.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for views and clones).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (tb *tensorBuffer) isUnique() bool {
	return tb.refCount.Load() == 1
}

// RawTensor is the low-level tensor representation.
// Several RawTensors may share one buffer: views address it through an element
// offset and per-dimension strides.
type RawTensor struct {
	buffer  *tensorBuffer // Shared reference-counted buffer
	shape   Shape         // Tensor dimensions
	stride  []int         // Element strides per dimension
	dtype   DataType      // Runtime type information
	device  Device        // Compute device
	offset  int           // Element offset into buffer
	wrapped bool          // Created from a Scalar by WrapScalar
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zeroed. A nil or empty shape creates a 0-dim tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid dtype %d", int(dtype))
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &RawTensor{
		buffer: newTensorBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Dim returns the number of dimensions (0 for scalars).
func (r *RawTensor) Dim() int {
	return len(r.shape)
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// Offset returns the element offset of the first element in the shared buffer.
func (r *RawTensor) Offset() int {
	return r.offset
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the logical size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsWrappedNumber reports whether the tensor was produced by WrapScalar.
func (r *RawTensor) IsWrappedNumber() bool {
	return r.wrapped
}

// IsContiguous reports whether the tensor is laid out densely in row-major order.
// Dimensions of size 1 are ignored.
func (r *RawTensor) IsContiguous() bool {
	expected := 1
	for i := len(r.shape) - 1; i >= 0; i-- {
		if r.shape[i] == 1 {
			continue
		}
		if r.stride[i] != expected {
			return false
		}
		expected *= r.shape[i]
	}
	return true
}

// SameStorage reports whether r and other share a buffer.
func (r *RawTensor) SameStorage(other *RawTensor) bool {
	return r.buffer == other.buffer
}

// Extent returns the half-open element range [start, end) of the buffer that
// the tensor can address.
func (r *RawTensor) Extent() (start, end int) {
	start, end = r.offset, r.offset+1
	for i, dim := range r.shape {
		reach := (dim - 1) * r.stride[i]
		if reach < 0 {
			start += reach
		} else {
			end += reach
		}
	}
	return start, end
}

// Data returns the raw byte slice starting at the tensor's first element.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset*r.dtype.Size():]
}

// Element is the set of Go types that back tensor storage.
// Float16 and BFloat16 are stored as uint16 bit patterns.
type Element interface {
	~bool | ~uint8 | ~int8 | ~int16 | ~int32 | ~int64 | ~uint16 | ~float32 | ~float64
}

// elementMatches reports whether T is the storage type of dt.
func elementMatches[T Element](dt DataType) bool {
	var zero T
	switch any(zero).(type) {
	case bool:
		return dt == Bool
	case uint8:
		return dt == Uint8
	case int8:
		return dt == Int8
	case int16:
		return dt == Int16
	case int32:
		return dt == Int32
	case int64:
		return dt == Int64
	case uint16:
		return dt == Float16 || dt == BFloat16
	case float32:
		return dt == Float32
	case float64:
		return dt == Float64
	default:
		return false
	}
}

// Storage returns the tensor's whole buffer viewed as []T. The element at
// multi-index idx lives at Offset() + sum(idx[i]*Strides()[i]).
// Panics if T is not the storage type of the tensor's dtype.
func Storage[T Element](r *RawTensor) []T {
	if !elementMatches[T](r.dtype) {
		var zero T
		panic(fmt.Sprintf("tensor dtype is %s, not %T", r.dtype, zero))
	}
	data := r.buffer.data
	n := len(data) / r.dtype.Size()
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length derived from buffer size
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}

// contiguous returns the tensor's elements as []T. Panics for strided views.
func contiguous[T Element](r *RawTensor) []T {
	if !r.IsContiguous() {
		panic(fmt.Sprintf("tensor with shape %v and strides %v is not contiguous", r.shape, r.stride))
	}
	return Storage[T](r)[r.offset : r.offset+r.NumElements()]
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32 or the tensor is not contiguous.
func (r *RawTensor) AsFloat32() []float32 { return contiguous[float32](r) }

// AsFloat64 interprets the data as []float64.
func (r *RawTensor) AsFloat64() []float64 { return contiguous[float64](r) }

// AsInt8 interprets the data as []int8.
func (r *RawTensor) AsInt8() []int8 { return contiguous[int8](r) }

// AsInt16 interprets the data as []int16.
func (r *RawTensor) AsInt16() []int16 { return contiguous[int16](r) }

// AsInt32 interprets the data as []int32.
func (r *RawTensor) AsInt32() []int32 { return contiguous[int32](r) }

// AsInt64 interprets the data as []int64.
func (r *RawTensor) AsInt64() []int64 { return contiguous[int64](r) }

// AsUint8 interprets the data as []uint8.
func (r *RawTensor) AsUint8() []uint8 { return contiguous[uint8](r) }

// AsBool interprets the data as []bool.
func (r *RawTensor) AsBool() []bool { return contiguous[bool](r) }

// AsHalf interprets Float16 or BFloat16 data as raw []uint16 bit patterns.
func (r *RawTensor) AsHalf() []uint16 { return contiguous[uint16](r) }

// Clone creates a shallow copy of the RawTensor that shares the buffer.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer:  r.buffer,
		shape:   r.shape.Clone(),
		stride:  append([]int(nil), r.stride...),
		dtype:   r.dtype,
		device:  r.device,
		offset:  r.offset,
		wrapped: r.wrapped,
	}
}

// Copy creates a deep, contiguous copy of the tensor.
func (r *RawTensor) Copy() *RawTensor {
	out, err := NewRaw(r.shape, r.dtype, r.device)
	if err != nil {
		panic(fmt.Sprintf("copy: %v", err))
	}
	copyInto(out, r)
	return out
}

// Release decrements the reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// Narrow returns a view of length elements along dim starting at start.
// The view shares the buffer with r.
func (r *RawTensor) Narrow(dim, start, length int) (*RawTensor, error) {
	if dim < 0 || dim >= len(r.shape) {
		return nil, fmt.Errorf("narrow: dim %d out of range for %dD tensor", dim, len(r.shape))
	}
	if start < 0 || length <= 0 || start+length > r.shape[dim] {
		return nil, fmt.Errorf("narrow: range [%d, %d) out of bounds for dimension %d (size %d)",
			start, start+length, dim, r.shape[dim])
	}
	view := r.Clone()
	view.wrapped = false
	view.shape[dim] = length
	view.offset += start * r.stride[dim]
	return view, nil
}

// Expand returns a broadcast view of r with the given shape. Expanded
// dimensions get stride 0, so several positions alias one element.
func (r *RawTensor) Expand(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	strides, err := BroadcastStrides(r.shape, r.stride, shape)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	view := r.Clone()
	view.wrapped = false
	view.shape = shape.Clone()
	view.stride = strides
	return view, nil
}

// Item returns the value of a single-element tensor.
func (r *RawTensor) Item() (Scalar, error) {
	if r.NumElements() != 1 {
		return Scalar{}, fmt.Errorf("item: tensor with %d elements cannot be converted to a scalar", r.NumElements())
	}
	return readAt(r, r.offset), nil
}

// Values returns every element as a Scalar in row-major order.
func (r *RawTensor) Values() []Scalar {
	out := make([]Scalar, 0, r.NumElements())
	forEachOffset(r.shape, r.stride, r.offset, func(_, off int) {
		out = append(out, readAt(r, off))
	})
	return out
}

// String returns a human-readable representation of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v on %s", r.dtype, r.shape, r.device)
}

// forEachOffset calls fn with the row-major position and buffer offset of every
// element addressed by shape/strides starting at offset.
func forEachOffset(shape Shape, strides []int, offset int, fn func(pos, off int)) {
	n := shape.NumElements()
	ndim := len(shape)
	coord := make([]int, ndim)
	off := offset
	for pos := 0; pos < n; pos++ {
		fn(pos, off)
		for d := ndim - 1; d >= 0; d-- {
			coord[d]++
			off += strides[d]
			if coord[d] < shape[d] {
				break
			}
			off -= coord[d] * strides[d]
			coord[d] = 0
		}
	}
}
