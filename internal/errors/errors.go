// Package errors provides the structured error taxonomy used across codenav.
// Every error carries the operation that failed and a Kind that decides how
// the owning panel reports it.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidPath marks an empty or unusable identifier. The operation
	// fails locally without touching state.
	KindInvalidPath
	// KindNotFound means the backend reported a missing resource.
	KindNotFound
	// KindTransport covers network failures, timeouts and non-2xx replies.
	KindTransport
	// KindFormat means the backend reply did not have the expected shape.
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPath:
		return "invalid path"
	case KindNotFound:
		return "not found"
	case KindTransport:
		return "transport error"
	case KindFormat:
		return "format error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for codenav.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Retryable reports whether the user can usefully re-trigger the operation.
// Format errors are displayed like transport errors.
func Retryable(err error) bool {
	switch GetKind(err) {
	case KindTransport, KindFormat:
		return true
	default:
		return false
	}
}

// UserMessage renders err for a panel. Transport and format failures share
// one retryable wording; not-found and invalid-path errors show their own
// context.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindTransport, KindFormat:
		return fmt.Sprintf("Request failed: %s (press r to retry)", rootMessage(e))
	case KindNotFound:
		return rootMessage(e)
	case KindInvalidPath:
		return "Invalid path: " + rootMessage(e)
	default:
		return err.Error()
	}
}

func rootMessage(e *Error) string {
	if e.Context != "" {
		return e.Context
	}
	return e.Err.Error()
}

// InvalidPath reports an empty identifier handed to op.
func InvalidPath(op Op, reason string) error {
	return E(op, KindInvalidPath, reason)
}

// NotFound reports a resource the backend does not know.
func NotFound(op Op, what string) error {
	return E(op, KindNotFound, what)
}

// Transport wraps a network-level failure.
func Transport(op Op, err error) error {
	return E(op, KindTransport, err)
}

// Format reports a backend reply that did not match the expected shape.
func Format(op Op, reason string) error {
	return E(op, KindFormat, reason)
}
