package mapping

import (
	"errors"
	"fmt"

	"recast/internal/common"
)

// ErrorKind partitions mapping errors by when and why they arise.
type ErrorKind int

const (
	// KindConfiguration covers mistakes made while building mappings:
	// mutating a sealed TypeMapping, invalid correspondences, out-of-range
	// thresholds. Raised at configuration time, never during a map call.
	KindConfiguration ErrorKind = iota
	// KindResolution means no TypeMapping could be found or inferred for a
	// type pair at map time. Fatal for that call only; mapper state is
	// untouched.
	KindResolution
	// KindTransform wraps a failure inside a user-supplied transform
	// callback, annotated with the type pair and field it was mapping.
	KindTransform
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindResolution:
		return "resolution"
	case KindTransform:
		return "transform"
	default:
		return common.UnknownStr
	}
}

// Error is the error type for every mapping failure. It always carries
// enough context (type pair and field, when applicable) to diagnose a
// misconfiguration without a debugger.
type Error struct {
	Kind            ErrorKind
	SourceType      string
	DestinationType string
	Field           string
	Message         string
	Err             error
}

func (e *Error) Error() string {
	pair := ""
	if e.SourceType != "" || e.DestinationType != "" {
		pair = fmt.Sprintf(" (%s -> %s)", e.SourceType, e.DestinationType)
	}

	msg := e.Message
	if e.Err != nil {
		if msg != "" {
			msg += ": " + e.Err.Error()
		} else {
			msg = e.Err.Error()
		}
	}

	if e.Field != "" {
		return fmt.Sprintf("%s error for field %q%s: %s", e.Kind, e.Field, pair, msg)
	}

	return fmt.Sprintf("%s error%s: %s", e.Kind, pair, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a mapping *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var me *Error
	if !errors.As(err, &me) {
		return false
	}

	return me.Kind == kind
}

func newSealedError(source, destination string) *Error {
	return &Error{
		Kind:            KindConfiguration,
		SourceType:      source,
		DestinationType: destination,
		Message:         "mapping already sealed",
	}
}

func newConfigError(source, destination, field, message string) *Error {
	return &Error{
		Kind:            KindConfiguration,
		SourceType:      source,
		DestinationType: destination,
		Field:           field,
		Message:         message,
	}
}
