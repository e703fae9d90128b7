package shared

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies the local validation failures surfaced to callers.
type ErrorKind string

const (
	KindUnknownOperation        ErrorKind = "UnknownOperation"
	KindMissingRequiredField    ErrorKind = "MissingRequiredField"
	KindMissingRequiredArgument ErrorKind = "MissingRequiredArgument"
	KindInvalidArgument         ErrorKind = "InvalidArgument"
	KindResourceNotFound        ErrorKind = "ResourceNotFound"
	KindUnknownTemplate         ErrorKind = "UnknownTemplate"
)

// Sentinel errors, one per kind. Every *Error unwraps to the sentinel of its kind.
var (
	ErrUnknownOperation        = errors.New("unknown operation")
	ErrMissingRequiredField    = errors.New("missing required field")
	ErrMissingRequiredArgument = errors.New("missing required argument")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrResourceNotFound        = errors.New("resource not found")
	ErrUnknownTemplate         = errors.New("unknown template")
)

var sentinels = map[ErrorKind]error{
	KindUnknownOperation:        ErrUnknownOperation,
	KindMissingRequiredField:    ErrMissingRequiredField,
	KindMissingRequiredArgument: ErrMissingRequiredArgument,
	KindInvalidArgument:         ErrInvalidArgument,
	KindResourceNotFound:        ErrResourceNotFound,
	KindUnknownTemplate:         ErrUnknownTemplate,
}

// Error is the typed failure returned by the dispatcher, the resource reader
// and the template engine. Fields lists every offending field or argument.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []string
}

// NewError builds an Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewFieldError builds an Error naming every field in fields.
func NewFieldError(kind ErrorKind, fields []string, details []string) *Error {
	msg := fmt.Sprintf("%s: %s", sentinels[kind], strings.Join(fields, ", "))
	if len(details) > 0 {
		msg += " (" + strings.Join(details, "; ") + ")"
	}
	return &Error{Kind: kind, Message: msg, Fields: append([]string(nil), fields...)}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return sentinels[e.Kind]
}

// KindOf reports the kind of err when it is (or wraps) an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind returns true when err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
