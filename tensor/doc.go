// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array and scalar model used by the binops
// elementwise operators.
//
// # Overview
//
// This package exposes:
//   - RawTensor, a strided view over a reference-counted buffer
//   - Scalar, a single bool, integer or float value tagged with its kind
//   - DataType and the promotion rules that pick a common dtype
//   - NumPy-style broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/binops/ops"
//	    "github.com/born-ml/binops/tensor"
//	)
//
//	func main() {
//	    a, _ := tensor.FromSlice([]int32{1, 2, 3}, tensor.Shape{3})
//	    mask, _ := ops.Default().Lt().Scalar(a, tensor.IntScalar(2))
//	    fmt.Println(mask.AsBool()) // [true false false]
//	}
//
// # Supported Data Types
//
//   - bool
//   - uint8, int8, int16, int32, int64
//   - float16, bfloat16 (stored as uint16 bit patterns, see AsHalf)
//   - float32, float64
//
// # Type Promotion
//
// Operands fall into three tiers: tensors with dimensions, 0-dim tensors, and
// wrapped numbers created by WrapScalar. A lower tier only changes the result
// dtype when it belongs to a higher category (bool < integral < floating):
//
//	int8 tensor + 1000   -> int8
//	int8 tensor + 0.5    -> float32
//	uint8 tensor + int8 tensor -> int16
//
// # Errors
//
// Every failure wraps one of the Err* values and is reported as an *OpError
// naming the operation, so callers test with errors.Is.
package tensor
