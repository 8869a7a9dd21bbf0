package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the request handling layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// Messages used when the underlying cause must not reach the caller.
const (
	MsgNotFound = "Resource not found"
	MsgConflict = "Database integrity error. A record with this value may already exist."
	MsgInternal = "An unexpected internal server error occurred."
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps the kind onto the status code returned to API callers.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type returned by the resource managers and the database backend.
// Message is safe to show to a caller; Err holds the cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a missing, malformed or wrongly typed request field.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports that no record exists for the requested key.
func NotFound(err error) *Error {
	return &Error{Kind: KindNotFound, Message: MsgNotFound, Err: err}
}

// Conflict reports a constraint violation detected by the datastore.
func Conflict(err error) *Error {
	return &Error{Kind: KindConflict, Message: MsgConflict, Err: err}
}

// Internal wraps an unanticipated failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// PublicMessage returns the text that may be sent back to a caller.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return MsgInternal
}
