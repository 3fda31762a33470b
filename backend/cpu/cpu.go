// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"go.uber.org/zap"

	"github.com/born-ml/binops/internal/backend/cpu"
	"github.com/born-ml/binops/internal/config"
	"github.com/born-ml/binops/internal/dispatch"
)

// Backend is the CPU kernel provider.
type Backend = cpu.CPUBackend

// Registry maps (operation, device) pairs to kernels.
type Registry = dispatch.Registry

// NewRegistry creates an empty kernel registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	return dispatch.NewRegistry(logger)
}

// New creates a CPU backend. A nil cfg uses the defaults.
//
// Example:
//
//	backend := cpu.New(nil, nil)
//	fmt.Println(backend.Name()) // CPU
func New(cfg *config.Config, logger *zap.Logger) *Backend {
	return cpu.New(cfg, logger)
}

// Register adds the CPU kernels for every binary operation to reg.
func Register(reg *Registry, cfg *config.Config, logger *zap.Logger) error {
	return cpu.Register(reg, cfg, logger)
}
