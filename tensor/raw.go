// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/binops/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape, dtype and device information via Shape(), DType(), Device()
//   - Typed data access via AsFloat32(), AsInt64(), AsHalf(), etc.
//   - Views sharing one buffer via Narrow(), Expand() and Clone()
//   - Reference counting for efficient memory management
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()  // Zero-copy access
//	clone := raw.Clone()     // Shares buffer via reference counting
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Scalar is an immutable single value tagged with its kind.
type Scalar = tensor.Scalar

// ScalarKind is the semantic kind of a Scalar.
type ScalarKind = tensor.ScalarKind

// OpError describes a failed operation.
type OpError = tensor.OpError

// Data types.
const (
	Bool     = tensor.Bool
	Uint8    = tensor.Uint8
	Int8     = tensor.Int8
	Int16    = tensor.Int16
	Int32    = tensor.Int32
	Int64    = tensor.Int64
	Float16  = tensor.Float16
	BFloat16 = tensor.BFloat16
	Float32  = tensor.Float32
	Float64  = tensor.Float64

	// DefaultFloat is the dtype wrapped floats and float-only ops use.
	DefaultFloat = tensor.DefaultFloat
)

// Devices.
const (
	CPU    = tensor.CPU
	CUDA   = tensor.CUDA
	Vulkan = tensor.Vulkan
	Metal  = tensor.Metal
	WebGPU = tensor.WebGPU
)

// Scalar kinds.
const (
	KindInt   = tensor.KindInt
	KindBool  = tensor.KindBool
	KindFloat = tensor.KindFloat
)

// Error kinds.
var (
	ErrTypeMismatch         = tensor.ErrTypeMismatch
	ErrConversion           = tensor.ErrConversion
	ErrUnsupportedOperation = tensor.ErrUnsupportedOperation
	ErrOverlap              = tensor.ErrOverlap
	ErrUnsupportedDevice    = tensor.ErrUnsupportedDevice
	ErrDTypePromotion       = tensor.ErrDTypePromotion
	ErrShapeMismatch        = tensor.ErrShapeMismatch
	ErrDeviceMismatch       = tensor.ErrDeviceMismatch
	ErrDivisionByZero       = tensor.ErrDivisionByZero
)

// NewRaw creates a zeroed tensor. A nil shape creates a 0-dim tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a CPU tensor holding a copy of data.
func FromSlice[T tensor.Native](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromScalars creates a CPU tensor of dtype dt from values.
func FromScalars(values []Scalar, shape Shape, dt DataType) (*RawTensor, error) {
	return tensor.FromScalars(values, shape, dt)
}

// Full creates a CPU tensor of dtype dt filled with value.
func Full(shape Shape, value Scalar, dt DataType) (*RawTensor, error) {
	return tensor.Full(shape, value, dt)
}

// ToSlice copies the tensor's elements into a new slice in row-major order.
func ToSlice[T tensor.Native](r *RawTensor) []T {
	return tensor.ToSlice[T](r)
}

// Cast returns a contiguous copy of r converted to dtype.
func Cast(r *RawTensor, dtype DataType) (*RawTensor, error) {
	return tensor.Cast(r, dtype)
}

// BoolScalar returns a boolean Scalar.
func BoolScalar(v bool) Scalar { return tensor.BoolScalar(v) }

// IntScalar returns an integer Scalar.
func IntScalar(v int64) Scalar { return tensor.IntScalar(v) }

// FloatScalar returns a floating-point Scalar.
func FloatScalar(v float64) Scalar { return tensor.FloatScalar(v) }

// ParseScalar parses "true"/"false", an integer literal or a float literal.
func ParseScalar(s string) (Scalar, error) { return tensor.ParseScalar(s) }

// ParseDataType returns the DataType named s, such as "int8" or "bfloat16".
func ParseDataType(s string) (DataType, bool) { return tensor.ParseDataType(s) }

// WrapScalar converts s into a 0-dim wrapped-number tensor.
func WrapScalar(s Scalar) *RawTensor { return tensor.WrapScalar(s) }

// CheckConvert verifies that s fits dt without overflow or loss.
func CheckConvert(s Scalar, dt DataType) error { return tensor.CheckConvert(s, dt) }

// ResultType returns the promoted dtype of the operands.
func ResultType(operands ...*RawTensor) (DataType, error) {
	return tensor.ResultType(operands...)
}

// PromoteTypes returns the smallest dtype both a and b convert to.
func PromoteTypes(a, b DataType) (DataType, error) { return tensor.PromoteTypes(a, b) }

// CanCast reports whether values of type from may be written into type to.
func CanCast(from, to DataType) bool { return tensor.CanCast(from, to) }

// BroadcastShapes returns the broadcast shape of a and b.
func BroadcastShapes(a, b Shape) (Shape, bool, error) { return tensor.BroadcastShapes(a, b) }
