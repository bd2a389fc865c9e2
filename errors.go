package classgen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors of the binding runtime.
var (
	// ErrNotRegistered is returned when a class, enum, container or
	// constant is looked up by a name the registry does not know.
	ErrNotRegistered = errors.New("classgen: not registered")

	// ErrAlreadyRegistered is returned when a binding is registered twice.
	ErrAlreadyRegistered = errors.New("classgen: already registered")

	// ErrBadArgument is returned when a host argument cannot be bound to
	// a constructor or method parameter.
	ErrBadArgument = errors.New("classgen: bad argument")
)

// NotRegisteredError is returned by registry lookups.
type NotRegisteredError struct {
	kind string
	name string
}

// Error returns the error string.
func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("classgen: %s %q is not registered", e.kind, e.name)
}

// Is reports whether the target error matches NotRegisteredError.
// This allows errors.Is(err, ErrNotRegistered) to return true.
func (e *NotRegisteredError) Is(err error) bool {
	return err == ErrNotRegistered
}

// Kind returns the kind of binding that was looked up.
func (e *NotRegisteredError) Kind() string {
	return e.kind
}

// Name returns the looked up name.
func (e *NotRegisteredError) Name() string {
	return e.name
}

// NewNotRegisteredError returns a new NotRegisteredError.
func NewNotRegisteredError(kind, name string) *NotRegisteredError {
	return &NotRegisteredError{kind: kind, name: name}
}

// IsNotRegistered returns true if the error is a NotRegisteredError.
func IsNotRegistered(err error) bool {
	if err == nil {
		return false
	}
	var e *NotRegisteredError
	return errors.As(err, &e) || errors.Is(err, ErrNotRegistered)
}

// AlreadyRegisteredError is returned when a name is bound twice.
type AlreadyRegisteredError struct {
	kind string
	name string
}

// Error returns the error string.
func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("classgen: %s %q is already registered", e.kind, e.name)
}

// Is reports whether the target error matches AlreadyRegisteredError.
func (e *AlreadyRegisteredError) Is(err error) bool {
	return err == ErrAlreadyRegistered
}

// ArgumentError describes a host argument that could not be bound.
type ArgumentError struct {
	Callee string // Class or method being called
	Param  string // Parameter name, empty for call-level errors
	Err    error  // Underlying conversion error, if any
	msg    string
}

// Error returns the error string.
func (e *ArgumentError) Error() string {
	var b strings.Builder
	b.WriteString("classgen: ")
	b.WriteString(e.Callee)
	if e.Param != "" {
		b.WriteString(" argument ")
		b.WriteString(e.Param)
	}
	if e.msg != "" {
		b.WriteString(": ")
		b.WriteString(e.msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ArgumentError.
func (e *ArgumentError) Is(err error) bool {
	return err == ErrBadArgument
}

// NewArgumentError returns a new ArgumentError.
func NewArgumentError(callee, param, msg string, err error) *ArgumentError {
	return &ArgumentError{Callee: callee, Param: param, msg: msg, Err: err}
}

// IsArgumentError returns true if the error is an ArgumentError.
func IsArgumentError(err error) bool {
	if err == nil {
		return false
	}
	var e *ArgumentError
	return errors.As(err, &e)
}

// ConversionError describes a host value that does not fit a Go type.
type ConversionError struct {
	From string // Host value type
	To   string // Go target type
	Msg  string
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("cannot convert %s to %s: %s", e.From, e.To, e.Msg)
	}
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}
