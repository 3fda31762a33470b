// Package cpu implements the elementwise binary kernels for the CPU device.
package cpu

import (
	vcpu "github.com/cwbudde/algo-vecmath/cpu"
	"go.uber.org/zap"

	"github.com/born-ml/binops/internal/config"
	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/parallel"
	"github.com/born-ml/binops/internal/tensor"
)

// CPUBackend holds the settings shared by all CPU kernels.
type CPUBackend struct {
	device    tensor.Device
	parallel  parallel.Config
	vectorize bool
	logger    *zap.Logger
}

// New creates a CPU backend from cfg. A nil cfg uses config.Default() and a
// nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *CPUBackend {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CPUBackend{
		device:    tensor.CPU,
		parallel:  cfg.ParallelSettings(),
		vectorize: cfg.Kernels.Vectorize,
		logger:    logger,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// simdVariant names the vecmath implementation selected for this machine.
func simdVariant() string {
	f := vcpu.DetectFeatures()
	switch {
	case f.ForceGeneric:
		return "vecmath/generic"
	case f.HasAVX2:
		return "vecmath/AVX2"
	case f.HasAVX:
		return "vecmath/AVX"
	case f.HasSSE2:
		return "vecmath/SSE2"
	case f.HasNEON:
		return "vecmath/NEON"
	default:
		return "vecmath/generic"
	}
}

// Register adds a kernel for every operation to reg.
func (cpu *CPUBackend) Register(reg *dispatch.Registry) error {
	generic := "generic"
	fast := generic
	if cpu.vectorize {
		fast = simdVariant()
	}

	kernels := []dispatch.Entry{
		{Op: dispatch.OpAdd, Variant: fast, Kernel: cpu.add},
		{Op: dispatch.OpSub, Variant: fast, Kernel: cpu.sub},
		{Op: dispatch.OpMul, Variant: fast, Kernel: cpu.mul},
		{Op: dispatch.OpDiv, Variant: generic, Kernel: cpu.div},
		{Op: dispatch.OpAtan2, Variant: generic, Kernel: cpu.atan2},
		{Op: dispatch.OpLogicalXor, Variant: generic, Kernel: cpu.logicalXor},
	}
	for _, c := range dispatch.Comparators() {
		kernels = append(kernels, dispatch.Entry{Op: c.Op(), Variant: generic, Kernel: cpu.comparison(c)})
	}

	for _, e := range kernels {
		e.Device = cpu.device
		if err := reg.Register(e); err != nil {
			return err
		}
	}
	cpu.logger.Debug("cpu kernels registered",
		zap.Int("kernels", len(kernels)),
		zap.Bool("vectorize", cpu.vectorize),
		zap.Bool("parallel", cpu.parallel.Enabled),
		zap.Int("workers", cpu.parallel.NumWorkers))
	return nil
}

// Register creates a backend from cfg and registers its kernels in reg.
func Register(reg *dispatch.Registry, cfg *config.Config, logger *zap.Logger) error {
	return New(cfg, logger).Register(reg)
}
