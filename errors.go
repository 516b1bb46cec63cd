package dbfield

import (
	"errors"
	"fmt"
)

// Sentinel errors for field misuse and lookup failures.
var (
	// ErrUnknownFieldType is returned when a type name is not registered.
	ErrUnknownFieldType = errors.New("dbfield: unknown field type")

	// ErrNamelessField is returned by operations that need a column name
	// (SaveInto, WriteToManipulation, RequireField) on a field without one.
	ErrNamelessField = errors.New("dbfield: field has no name")

	// ErrInvalidValue is returned when a value cannot be coerced to the field type.
	ErrInvalidValue = errors.New("dbfield: invalid value")

	// ErrUnsupportedDialect is returned for dialect codes outside the known set.
	ErrUnsupportedDialect = errors.New("dbfield: unsupported dialect")
)

// UnknownTypeError reports a Create call with an unregistered type name.
type UnknownTypeError struct {
	TypeName string
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("dbfield: unknown field type %q", e.TypeName)
}

// Is reports whether the target error matches ErrUnknownFieldType.
func (e *UnknownTypeError) Is(err error) bool {
	return err == ErrUnknownFieldType
}

// NamelessFieldError is a programmer error: an operation needing the column
// name was called on a field constructed without one.
type NamelessFieldError struct {
	Op   string // operation, e.g. "SaveInto"
	Kind Kind
}

// Error returns the error string.
func (e *NamelessFieldError) Error() string {
	return fmt.Sprintf("dbfield: %s called on a nameless %s field", e.Op, e.Kind)
}

// Is reports whether the target error matches ErrNamelessField.
func (e *NamelessFieldError) Is(err error) bool {
	return err == ErrNamelessField
}

// IsNamelessField returns true if the error is a NamelessFieldError.
func IsNamelessField(err error) bool {
	if err == nil {
		return false
	}
	var e *NamelessFieldError
	return errors.As(err, &e) || errors.Is(err, ErrNamelessField)
}

// ValueError reports a value that the field type cannot hold.
type ValueError struct {
	Field string
	Kind  Kind
	Value any
	Err   error // optional parse error
}

// Error returns the error string.
func (e *ValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dbfield: invalid %T value %v for %s field %q: %v", e.Value, e.Value, e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("dbfield: invalid %T value %v for %s field %q", e.Value, e.Value, e.Kind, e.Field)
}

// Is reports whether the target error matches ErrInvalidValue.
func (e *ValueError) Is(err error) bool {
	return err == ErrInvalidValue
}

// Unwrap returns the underlying parse error, if any.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// IsValueError returns true if the error is a ValueError.
func IsValueError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValueError
	return errors.As(err, &e)
}

func newValueError(f IDBField, v any, err error) *ValueError {
	return &ValueError{Field: f.Name(), Kind: f.Kind(), Value: v, Err: err}
}
