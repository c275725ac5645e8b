// Package errkind defines the small, dense error taxonomy shared by every
// core package. Every failure that the kernel can produce is tagged with a
// Kind so callers can branch on outcome without string matching, while the
// wrapped error still carries a human-readable chain via github.com/pkg/errors.
package errkind

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the outcome space a core operation can return.
type Kind int

const (
	// Success is never actually returned as an error (nil is), but it
	// anchors the enumeration at its documented zero-adjacent position.
	Success Kind = iota
	AllocationFailure
	NullObject
	NotATessellationObject
	NotABody
	WireBody
	DegenerateEdge
	IndexOutOfRange
	ParameterOutOfRange
	TopologyMismatch
	ConstraintViolation
	NotFound
	NoDataYet
	GeometryError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case AllocationFailure:
		return "allocation-failure"
	case NullObject:
		return "null-object"
	case NotATessellationObject:
		return "not-a-tessellation-object"
	case NotABody:
		return "not-a-body"
	case WireBody:
		return "wire-body"
	case DegenerateEdge:
		return "degenerate-edge"
	case IndexOutOfRange:
		return "index-out-of-range"
	case ParameterOutOfRange:
		return "parameter-out-of-range"
	case TopologyMismatch:
		return "topology-mismatch"
	case ConstraintViolation:
		return "constraint-violation"
	case NotFound:
		return "not-found"
	case NoDataYet:
		return "no-data-yet"
	case GeometryError:
		return "geometry-error"
	default:
		return fmt.Sprintf("errkind.Kind(%d)", int(k))
	}
}

// Error is the concrete error type returned by core operations. Op names the
// failing operation (e.g. "tessellate_body", "insert_edge_verts") and Detail
// gives a short, specific description. Cause, if non-nil, is returned by
// Unwrap, so errors.Unwrap/errors.Is/errors.As reach the underlying failure;
// *Error has no Cause method, so pkg/errors.Cause stops at the *Error.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no underlying cause.
func New(kind Kind, op, detail string) error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Wrap builds an *Error that chains an existing error, the way
// model3d/export.go wraps os/io failures with errors.Wrap.
func Wrap(cause error, kind Kind, op, detail string) error {
	if cause == nil {
		return New(kind, op, detail)
	}
	return &Error{Kind: kind, Op: op, Detail: detail, Cause: errors.WithStack(cause)}
}

// As extracts the Kind from err, returning (kind, true) if err (or something
// it wraps) is an *Error, or (Success, false) otherwise.
func As(err error) (Kind, bool) {
	var e *Error
	for err != nil {
		if te, ok := err.(*Error); ok {
			e = te
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return Success, false
	}
	return e.Kind, true
}
