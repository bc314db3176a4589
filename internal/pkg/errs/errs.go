package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrInvalidState        = errors.New("invalid state")
	ErrAlreadyExists       = errors.New("object already exists")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ObjectNotFoundError reports a lookup by id that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrObjectNotFound, e.ParamName, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports an input that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid,
		sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory input.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError reports a transition that the current status does not allow.
type InvalidStateError struct {
	Entity    string
	Current   any
	Requested any
}

func NewInvalidStateError(entity string, current, requested any) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Current: current, Requested: requested}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %v to %v", ErrInvalidState, e.Entity, e.Current, e.Requested)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// AlreadyExistsError reports a duplicate creation keyed by ParamName/ID.
type AlreadyExistsError struct {
	ParamName string
	ID        any
}

func NewAlreadyExistsError(paramName string, id any) *AlreadyExistsError {
	return &AlreadyExistsError{ParamName: paramName, ID: id}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s %v", ErrAlreadyExists, e.ParamName, e.ID)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// UpstreamUnavailableError reports a failed synchronous collaborator call.
type UpstreamUnavailableError struct {
	Upstream string
	Cause    error
}

func NewUpstreamUnavailableError(upstream string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Upstream: upstream, Cause: cause}
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUpstreamUnavailable, e.Upstream, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamUnavailable, e.Upstream)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
