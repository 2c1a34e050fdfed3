package engine

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed, mirroring the store package's
// RetCode enum generalized to the eight kinds the error handling design
// requires.
type Kind int

const (
	KindUsage Kind = iota
	KindNotFound
	KindExists
	KindConflict
	KindOutOfMemory
	KindIO
	KindUnsupported
	KindCorruption
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindNotFound:
		return "not_found"
	case KindExists:
		return "exists"
	case KindConflict:
		return "conflict"
	case KindOutOfMemory:
		return "out_of_memory"
	case KindIO:
		return "io"
	case KindUnsupported:
		return "unsupported"
	case KindCorruption:
		return "corruption"
	default:
		return "unknown"
	}
}

// Error is the engine's diagnostic type. It carries a Kind so callers can
// branch on the failure category without parsing the message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewError builds an *Error with a formatted message.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error. The bool
// is false when err is not an engine error at all.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
