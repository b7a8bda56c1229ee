package fieldmap

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidArgument indicates a nil source, nil target type, or a source that is not a struct.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUninstantiable indicates the target type cannot be constructed.
	ErrUninstantiable = errors.New("uninstantiable target")

	// ErrFieldMismatch indicates a source field has no same-named target field
	// while the mapper runs with MismatchFail.
	ErrFieldMismatch = errors.New("field mismatch")

	// ErrNotComparable indicates a set was requested for a target type that
	// neither implements Identifier nor supports ==.
	ErrNotComparable = errors.New("target not comparable")

	// ErrMarshal indicates the codec failed to marshal a mapping result.
	ErrMarshal = errors.New("marshal failed")
)

// ConfigError represents a mapper configuration error.
// It wraps a sentinel error with the type that triggered it.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrUninstantiable, ErrNotComparable, ...)
	Type   string // Type that was rejected
	Reason string // Optional detail
}

func (e *ConfigError) Error() string {
	if e.Type != "" && e.Reason != "" {
		return fmt.Sprintf("%s %s: %s", e.Err.Error(), e.Type, e.Reason)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s %s", e.Err.Error(), e.Type)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Reason)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MappingError represents a failure while mapping one source value.
type MappingError struct {
	Err    error  // Underlying sentinel error (ErrUninstantiable, ErrFieldMismatch)
	Source string // Source type name
	Target string // Target type name
	Field  string // Field name, if the failure concerns a single field
	Cause  error  // Original error, if any
}

func (e *MappingError) Error() string {
	msg := fmt.Sprintf("map %s to %s: %s", e.Source, e.Target, e.Err.Error())
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s)", e.Field)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// ElementError locates a failure inside a collection mapping.
type ElementError struct {
	Index int   // Position of the failing element in the input
	Err   error // Error returned for that element
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal error.
type CodecError struct {
	Err         error  // Underlying sentinel error (ErrMarshal)
	ContentType string // Content type of the failing codec
	Cause       error  // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for a rejected type.
func newConfigError(sentinel error, typ, reason string) error {
	return &ConfigError{
		Err:    sentinel,
		Type:   typ,
		Reason: reason,
	}
}

// newMappingError creates a MappingError for a single-value failure.
func newMappingError(sentinel error, source, target, field string, cause error) error {
	return &MappingError{
		Err:    sentinel,
		Source: source,
		Target: target,
		Field:  field,
		Cause:  cause,
	}
}

// newCodecError creates a CodecError for marshal failures.
func newCodecError(contentType string, cause error) error {
	return &CodecError{
		Err:         ErrMarshal,
		ContentType: contentType,
		Cause:       cause,
	}
}
