package dispatch

import (
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/born-ml/binops/internal/iterator"
	"github.com/born-ml/binops/internal/tensor"
)

// Entry describes one registered kernel.
type Entry struct {
	Op      OpID
	Device  tensor.Device
	Variant string // Implementation name (e.g., "generic", "vecmath/AVX2")
	Kernel  Kernel
}

type key struct {
	op     OpID
	device tensor.Device
}

// Registry maps (operation, device) to a kernel.
//
// Backends register during startup, then the owner calls Freeze. After
// Freeze the table is immutable and Lookup reads it without locking.
type Registry struct {
	mu      sync.Mutex
	entries map[key]Entry
	frozen  atomic.Bool
	logger  *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: make(map[key]Entry),
		logger:  logger,
	}
}

// Register adds a kernel. A later registration for the same pair replaces
// the earlier one. Fails once the registry is frozen.
func (r *Registry) Register(e Entry) error {
	if !e.Op.Valid() {
		return tensor.Errorf("register", tensor.ErrUnsupportedOperation, "unknown operation %d", int(e.Op))
	}
	if e.Kernel == nil {
		return tensor.Errorf("register", tensor.ErrUnsupportedOperation, "nil kernel for %s on %s", e.Op, e.Device)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() {
		return tensor.Errorf("register", tensor.ErrUnsupportedOperation,
			"registry is frozen; cannot register %s on %s", e.Op, e.Device)
	}
	r.entries[key{e.Op, e.Device}] = e
	r.logger.Debug("kernel registered",
		zap.Stringer("op", e.Op),
		zap.Stringer("device", e.Device),
		zap.String("variant", e.Variant))
	return nil
}

// Freeze makes the registry read-only. Calling it again is a no-op.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Swap(true) {
		return
	}
	r.logger.Debug("kernel registry frozen", zap.Int("kernels", len(r.entries)))
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Lookup returns the kernel registered for op on device.
func (r *Registry) Lookup(op OpID, device tensor.Device) (Kernel, error) {
	if !r.frozen.Load() {
		// Registration may still be in progress.
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	e, ok := r.entries[key{op, device}]
	if !ok {
		return nil, tensor.Errorf(op.String(), tensor.ErrUnsupportedDevice,
			"no %s kernel registered for device %s", op, device)
	}
	return e.Kernel, nil
}

// Invoke looks up the kernel for op on the descriptor's device and runs it.
func (r *Registry) Invoke(op OpID, d *iterator.Descriptor, extra ...tensor.Scalar) error {
	kernel, err := r.Lookup(op, d.Device())
	if err != nil {
		return err
	}
	return kernel(d, extra...)
}

// Entries lists registered kernels ordered by device then operation.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Device != out[j].Device {
			return out[i].Device < out[j].Device
		}
		return out[i].Op < out[j].Op
	})
	return out
}
