package tensor

import (
	"errors"
	"fmt"
)

// Error kinds returned by tensor operations. Every failure wraps exactly one of
// these, so callers test with errors.Is.
var (
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrConversion           = errors.New("value cannot be converted without overflow")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrOverlap              = errors.New("unsupported memory overlap")
	ErrUnsupportedDevice    = errors.New("no kernel registered for device")
	ErrDTypePromotion       = errors.New("dtypes cannot be promoted")
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrDeviceMismatch       = errors.New("operands are on different devices")
	ErrDivisionByZero       = errors.New("integer division by zero")
)

// OpError describes a failed operation.
type OpError struct {
	Op     string // Operation name (e.g., "add_out", "lt")
	Err    error  // One of the Err* kinds above
	Detail string // Human-readable specifics
}

// Error implements the error interface.
func (e *OpError) Error() string {
	switch {
	case e.Op != "" && e.Detail != "":
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the error kind.
func (e *OpError) Unwrap() error {
	return e.Err
}

// Errorf builds an *OpError of the given kind.
func Errorf(op string, kind error, format string, args ...any) error {
	return &OpError{Op: op, Err: kind, Detail: fmt.Sprintf(format, args...)}
}

// WithOp returns err with its operation name set to op. Errors that already
// name an operation and non-OpErrors are returned unchanged.
func WithOp(op string, err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) && opErr.Op == "" {
		clone := *opErr
		clone.Op = op
		return &clone
	}
	return err
}
