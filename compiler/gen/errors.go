package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrSchemaViolation indicates a model that breaks a schema rule.
	ErrSchemaViolation = errors.New("classgen: schema violation")
	// ErrUnsupportedShape indicates a type shape the emitter has no rule for.
	ErrUnsupportedShape = errors.New("classgen: unsupported shape")
	// ErrNamingCollision indicates two generated identifiers that coincide.
	ErrNamingCollision = errors.New("classgen: naming collision")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("classgen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("classgen: code generation failed")
)

// SchemaViolationError reports a broken schema rule.
type SchemaViolationError struct {
	Class     string // Class name (if applicable)
	Attribute string // Attribute, method or parameter name (if applicable)
	Enum      string // Enum name (if applicable)
	Rule      string
	Cause     error
}

// Error implements the error interface.
func (e *SchemaViolationError) Error() string {
	var b strings.Builder
	b.WriteString("classgen: schema violation")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Attribute != "" {
		b.WriteString(" member ")
		b.WriteString(e.Attribute)
	}
	if e.Enum != "" {
		b.WriteString(" on enum ")
		b.WriteString(e.Enum)
	}
	if e.Rule != "" {
		b.WriteString(": ")
		b.WriteString(e.Rule)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaViolationError.
func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// NewSchemaViolation creates a new SchemaViolationError.
func NewSchemaViolation(class, attr, rule string, cause error) *SchemaViolationError {
	return &SchemaViolationError{
		Class:     class,
		Attribute: attr,
		Rule:      rule,
		Cause:     cause,
	}
}

// locate attaches the class and member to a violation returned for a
// nested step, prefixing its rule. Other errors are wrapped in a new
// violation.
func locate(class, attr, rule string, err error) *SchemaViolationError {
	var sv *SchemaViolationError
	if errors.As(err, &sv) && sv.Class == "" && sv.Attribute == "" && sv.Enum == "" {
		x := *sv
		x.Class, x.Attribute = class, attr
		x.Rule = rule + ": " + sv.Rule
		return &x
	}
	return NewSchemaViolation(class, attr, rule, err)
}

// NewEnumViolation creates a new SchemaViolationError on an enum.
func NewEnumViolation(enum, rule string) *SchemaViolationError {
	return &SchemaViolationError{Enum: enum, Rule: rule}
}

// UnsupportedShapeError reports an attribute type the emitter cannot handle.
type UnsupportedShapeError struct {
	Class     string
	Attribute string
	Shape     string // Canonical type text
	Operation string // "deep-copy", ...
}

// Error implements the error interface.
func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("classgen: unsupported shape %s for %s of %s.%s", e.Shape, e.Operation, e.Class, e.Attribute)
}

// Is reports whether the target matches the sentinel error for UnsupportedShapeError.
func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}

// NewUnsupportedShape creates a new UnsupportedShapeError.
func NewUnsupportedShape(class, attr, shape, op string) *UnsupportedShapeError {
	return &UnsupportedShapeError{
		Class:     class,
		Attribute: attr,
		Shape:     shape,
		Operation: op,
	}
}

// NamingCollisionError reports an identifier claimed twice.
type NamingCollisionError struct {
	Ident  string   // The colliding Go identifier
	Owners []string // What claimed it, in claim order
}

// Error implements the error interface.
func (e *NamingCollisionError) Error() string {
	return fmt.Sprintf("classgen: naming collision on %s between %s", e.Ident, strings.Join(e.Owners, " and "))
}

// Is reports whether the target matches the sentinel error for NamingCollisionError.
func (e *NamingCollisionError) Is(target error) bool {
	return target == ErrNamingCollision
}

// NewNamingCollision creates a new NamingCollisionError.
func NewNamingCollision(ident string, owners ...string) *NamingCollisionError {
	return &NamingCollisionError{Ident: ident, Owners: owners}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("classgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("classgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a failure while emitting one class or a
// global artifact.
type GenerationError struct {
	Phase     Phase
	Class     string
	Attribute string
	File      string
	Cause     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("classgen: generation error")
	if e.Phase != PhaseIdle {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase.String())
	}
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Attribute != "" {
		b.WriteString(" member ")
		b.WriteString(e.Attribute)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase Phase, class, file string, cause error) *GenerationError {
	e := &GenerationError{
		Phase: phase,
		Class: class,
		File:  file,
		Cause: cause,
	}
	var (
		sv *SchemaViolationError
		us *UnsupportedShapeError
	)
	switch {
	case errors.As(cause, &us):
		e.Attribute = us.Attribute
	case errors.As(cause, &sv):
		e.Attribute = sv.Attribute
	}
	return e
}

// IsSchemaViolation reports whether the error is a SchemaViolationError.
func IsSchemaViolation(err error) bool {
	var e *SchemaViolationError
	return errors.As(err, &e)
}

// IsUnsupportedShape reports whether the error is an UnsupportedShapeError.
func IsUnsupportedShape(err error) bool {
	var e *UnsupportedShapeError
	return errors.As(err, &e)
}

// IsNamingCollision reports whether the error is a NamingCollisionError.
func IsNamingCollision(err error) bool {
	var e *NamingCollisionError
	return errors.As(err, &e)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
