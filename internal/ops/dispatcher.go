// Package ops exposes the elementwise binary operations.
//
// Every operation comes in three forms: a new form that allocates its
// result, an Out form that writes into a caller-supplied tensor, and an
// InPlace form that overwrites the left operand. Out and InPlace forms
// always ask the iterator to reject unsafe aliasing between the output and
// the inputs. Scalar overloads wrap the scalar into a 0-dim tensor and call
// the tensor-tensor form.
package ops

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/born-ml/binops/internal/backend/cpu"
	"github.com/born-ml/binops/internal/config"
	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// Dispatcher validates operands, builds an execution descriptor and runs
// the kernel registered for the descriptor's device.
type Dispatcher struct {
	registry    *dispatch.Registry
	logger      *zap.Logger
	comparisons map[dispatch.OpID]*Comparison
}

// New creates a Dispatcher over a populated registry. The registry should be
// frozen. A nil logger disables logging.
func New(reg *dispatch.Registry, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		registry:    reg,
		logger:      logger,
		comparisons: make(map[dispatch.OpID]*Comparison),
	}
	for _, c := range dispatch.Comparators() {
		d.comparisons[c.Op()] = &Comparison{dispatcher: d, cmp: c}
	}
	return d
}

// NewFromConfig registers the CPU kernels described by cfg in a fresh
// registry, freezes it and returns a Dispatcher over it.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Dispatcher, error) {
	reg := dispatch.NewRegistry(logger)
	if err := cpu.Register(reg, cfg, logger); err != nil {
		return nil, err
	}
	reg.Freeze()
	return New(reg, logger), nil
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide Dispatcher with CPU kernels registered
// from config.Default(). It is built on first use.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		d, err := NewFromConfig(config.Default(), nil)
		if err != nil {
			panic(fmt.Sprintf("ops: default kernel registration failed: %v", err))
		}
		defaultDispatcher = d
	})
	return defaultDispatcher
}

// Kernels lists the registered kernels.
func (o *Dispatcher) Kernels() []dispatch.Entry {
	return o.registry.Entries()
}

// checkFunc validates a built descriptor before its kernel runs.
type checkFunc func(d *iterator.Descriptor) error

// run builds the descriptor for cfg, applies check, invokes the kernel for op
// and returns the resolved output. name identifies the public entry point in
// errors and logs.
func (o *Dispatcher) run(name string, op dispatch.OpID, cfg iterator.Config, check checkFunc, extra ...tensor.Scalar) (*tensor.RawTensor, error) {
	d, err := iterator.Build(cfg)
	if err != nil {
		return nil, tensor.WithOp(name, err)
	}
	if check != nil {
		if err := check(d); err != nil {
			return nil, tensor.WithOp(name, err)
		}
	}

	if ce := o.logger.Check(zap.DebugLevel, "dispatch"); ce != nil {
		ce.Write(
			zap.String("op", name),
			zap.Stringer("device", d.Device()),
			zap.Stringer("compute", d.ComputeType()),
			zap.Stringer("result", d.ResultType()),
			zap.Int("numel", d.NumElements()),
			zap.Bool("dense", d.Dense()))
	}

	if err := o.registry.Invoke(op, d, extra...); err != nil {
		return nil, tensor.WithOp(name, err)
	}
	if err := d.Finish(); err != nil {
		return nil, tensor.WithOp(name, err)
	}

	out := d.Output()
	if cfg.Output != nil && (out != cfg.Output || out.DType() != cfg.Output.DType()) {
		panic(fmt.Sprintf("%s: resolved output %s does not match the provided output %s", name, out, cfg.Output))
	}
	return out, nil
}

// outConfig describes a call that writes into out with overlap checking.
func outConfig(out, a, b *tensor.RawTensor, mode iterator.Mode) iterator.Config {
	return iterator.Config{Output: out, Left: a, Right: b, CheckOverlap: true, Mode: mode}
}

// newConfig describes a call that allocates its output.
func newConfig(a, b *tensor.RawTensor, mode iterator.Mode) iterator.Config {
	return iterator.Config{Left: a, Right: b, Mode: mode}
}

func requireOperands(name string, operands ...*tensor.RawTensor) error {
	for _, t := range operands {
		if t == nil {
			return tensor.Errorf(name, tensor.ErrUnsupportedOperation, "nil tensor operand")
		}
	}
	return nil
}
