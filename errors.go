package ncurve

import (
	"errors"
	"fmt"
)

// ErrorKind classifies kernel errors.
type ErrorKind int

// Error kinds
const (
	NoError ErrorKind = iota
	InvalidArgument
	OutOfRange
	OrderTooLow
	ToleranceExceeded
	DegenerateInput
	AllocationFailure
	OrderMismatch
	NoNormalField
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "OK"
	case InvalidArgument:
		return "invalid argument"
	case OutOfRange:
		return "out of range"
	case OrderTooLow:
		return "order too low"
	case ToleranceExceeded:
		return "tolerance exceeded"
	case DegenerateInput:
		return "degenerate input"
	case AllocationFailure:
		return "allocation failure"
	case OrderMismatch:
		return "order mismatch"
	case NoNormalField:
		return "no normal field"
	}
	return "undefined error"
}

// Sentinels for errors.Is.
var (
	ErrInvalidArgument   = errors.New(InvalidArgument.String())
	ErrOutOfRange        = errors.New(OutOfRange.String())
	ErrOrderTooLow       = errors.New(OrderTooLow.String())
	ErrToleranceExceeded = errors.New(ToleranceExceeded.String())
	ErrDegenerateInput   = errors.New(DegenerateInput.String())
	ErrAllocationFailure = errors.New(AllocationFailure.String())
	ErrOrderMismatch     = errors.New(OrderMismatch.String())
	ErrNoNormalField     = errors.New(NoNormalField.String())
)

var sentinels = map[ErrorKind]error{
	InvalidArgument:   ErrInvalidArgument,
	OutOfRange:        ErrOutOfRange,
	OrderTooLow:       ErrOrderTooLow,
	ToleranceExceeded: ErrToleranceExceeded,
	DegenerateInput:   ErrDegenerateInput,
	AllocationFailure: ErrAllocationFailure,
	OrderMismatch:     ErrOrderMismatch,
	NoNormalField:     ErrNoNormalField,
}

// Error is an error raised by a curve operation. It wraps the sentinel of
// its kind.
type Error struct {
	Op   string
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("ncurve: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("ncurve: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// newError creates an error of kind k for operation op and traces it.
func newError(op string, k ErrorKind, format string, v ...interface{}) error {
	err := &Error{Op: op, Kind: k, Msg: fmt.Sprintf(format, v...)}
	tracer().Errorf("%s", err.Error())
	return err
}

// KindOf returns the kind of a kernel error. Errors wrapping one of the
// sentinels report its kind, other errors report InvalidArgument and nil
// reports NoError.
func KindOf(err error) ErrorKind {
	if err == nil {
		return NoError
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for k, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return k
		}
	}
	return InvalidArgument
}
