package iterator

import (
	"github.com/born-ml/binops/internal/tensor"
)

// overlapStatus classifies how two tensors share memory.
type overlapStatus int

const (
	overlapNone    overlapStatus = iota
	overlapFull                  // Same elements in the same layout
	overlapPartial               // Intersecting but different ranges
	overlapTooHard               // Strided views we do not analyse
)

// hasInternalOverlap reports whether several positions of t refer to one
// memory location, which happens for expanded (stride 0) dimensions.
func hasInternalOverlap(t *tensor.RawTensor) bool {
	for i, dim := range t.Shape() {
		if dim > 1 && t.Strides()[i] == 0 {
			return true
		}
	}
	return false
}

// getOverlapStatus compares the byte ranges two tensors address.
func getOverlapStatus(a, b *tensor.RawTensor) overlapStatus {
	if a == b {
		return overlapFull
	}
	if !a.SameStorage(b) {
		return overlapNone
	}
	if !a.IsContiguous() || !b.IsContiguous() {
		return overlapTooHard
	}

	aStart, aEnd := byteExtent(a)
	bStart, bEnd := byteExtent(b)
	switch {
	case aStart == bStart && aEnd == bEnd:
		return overlapFull
	case aStart < bEnd && bStart < aEnd:
		return overlapPartial
	default:
		return overlapNone
	}
}

func byteExtent(t *tensor.RawTensor) (start, end int) {
	start, end = t.Extent()
	size := t.DType().Size()
	return start * size, end * size
}

// checkOverlap rejects outputs that alias themselves or partially alias an
// input. Full aliasing (x op= x) is safe for elementwise kernels.
func checkOverlap(out *tensor.RawTensor, inputs ...*tensor.RawTensor) error {
	if hasInternalOverlap(out) {
		return tensor.Errorf("", tensor.ErrOverlap,
			"more than one element of the written-to tensor refers to a single memory location; clone the tensor before writing to it")
	}
	for _, in := range inputs {
		if getOverlapStatus(out, in) == overlapPartial {
			return tensor.Errorf("", tensor.ErrOverlap,
				"some elements of the input tensors and the written-to tensor refer to a single memory location; clone the input before writing")
		}
	}
	return nil
}

// unsafeAlias reports whether writing out may clobber elements of in that a
// kernel has yet to read. Only identical layouts are safe to share.
func unsafeAlias(out, in *tensor.RawTensor) bool {
	switch getOverlapStatus(out, in) {
	case overlapPartial, overlapTooHard:
		return true
	default:
		return false
	}
}
