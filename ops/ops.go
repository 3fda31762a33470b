// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops exposes the elementwise binary operators: add, sub, rsub, mul,
// div, atan2, logical_xor and the six comparisons.
//
// # Basic Usage
//
//	d := ops.Default()
//	a, _ := tensor.FromSlice([]int8{1, 2, 3}, tensor.Shape{3})
//	b, _ := tensor.FromSlice([]int8{4, 5, 6}, tensor.Shape{3})
//
//	sum, _ := d.Add(a, b, tensor.IntScalar(1))     // new tensor
//	_, _ = d.MulInPlace(a, b)                     // overwrites a
//	mask, _ := d.Lt().Scalar(a, tensor.IntScalar(10))
//
// # Calling Forms
//
// Each operation comes as a new form, an Out form writing into a
// caller-supplied tensor, an InPlace form overwriting the left operand, and
// scalar overloads. Out and InPlace forms reject outputs that partially alias
// an input.
//
// # Configuration
//
// NewFromConfig builds a Dispatcher with its own kernel registry from a YAML
// config (see LoadConfig). Default uses the built-in defaults.
package ops

import (
	"go.uber.org/zap"

	"github.com/born-ml/binops/internal/config"
	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/ops"
)

// Dispatcher runs binary operations through a kernel registry.
type Dispatcher = ops.Dispatcher

// Comparison implements the calling forms of one comparison operator.
type Comparison = ops.Comparison

// Config configures parallelism, kernel selection and logging.
type Config = config.Config

// OpID identifies a binary operation.
type OpID = dispatch.OpID

// KernelEntry describes one registered kernel.
type KernelEntry = dispatch.Entry

// Operations.
const (
	OpAdd        = dispatch.OpAdd
	OpSub        = dispatch.OpSub
	OpMul        = dispatch.OpMul
	OpDiv        = dispatch.OpDiv
	OpAtan2      = dispatch.OpAtan2
	OpLogicalXor = dispatch.OpLogicalXor
	OpLt         = dispatch.OpLt
	OpLe         = dispatch.OpLe
	OpGt         = dispatch.OpGt
	OpGe         = dispatch.OpGe
	OpEq         = dispatch.OpEq
	OpNe         = dispatch.OpNe
)

// Default returns the shared Dispatcher built from the default config.
func Default() *Dispatcher {
	return ops.Default()
}

// New creates a Dispatcher over a populated, frozen registry.
func New(reg *dispatch.Registry, logger *zap.Logger) *Dispatcher {
	return ops.New(reg, logger)
}

// NewFromConfig creates a Dispatcher with CPU kernels configured by cfg.
func NewFromConfig(cfg *Config, logger *zap.Logger) (*Dispatcher, error) {
	return ops.NewFromConfig(cfg, logger)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a YAML config file and applies BINOPS_* environment
// overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ParseOpID returns the operation with the given name, such as "add" or "ge".
func ParseOpID(name string) (OpID, bool) {
	return dispatch.ParseOpID(name)
}
