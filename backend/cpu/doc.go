// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU kernels for the binary operators.
//
// # Overview
//
// Every operation has a generic strided kernel covering all dtypes.
// Dense float64 add, sub and mul use algo-vecmath block kernels, which
// pick an AVX2, AVX, SSE2 or NEON implementation at runtime. Large inputs
// are split across workers when parallelism is enabled in the config.
//
// # Basic Usage
//
//	reg := cpu.NewRegistry(nil)
//	if err := cpu.Register(reg, nil, nil); err != nil {
//	    return err
//	}
//	reg.Freeze()
//	d := ops.New(reg, nil)
//
// Most callers use ops.Default or ops.NewFromConfig instead.
//
// # Thread Safety
//
// Kernels share no mutable state and may run concurrently.
package cpu
