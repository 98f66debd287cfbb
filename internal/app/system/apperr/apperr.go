// Package apperr is the small error taxonomy handlers return at the HTTP edge.
//
// Stores return plain errors (sentinels or driver errors). Handlers translate
// the ones they understand into an *Error with a Kind; respond.Error maps the
// Kind to a status code and writes the JSON envelope. Anything that is not an
// *Error is treated as internal.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// Status returns the HTTP status for k.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Error is a client-facing error. Message is safe to send to the caller;
// Code is an optional machine-readable errorCode; Err is the underlying cause
// (logged, never sent).
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithCode returns a copy of e with Code set.
func (e *Error) WithCode(code string) *Error {
	cp := *e
	cp.Code = code
	return &cp
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) *Error   { return New(KindValidation, msg) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(KindForbidden, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }
func Conflict(msg string) *Error     { return New(KindConflict, msg) }

// Internal wraps an unexpected error. The message sent to the client is generic.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: cause}
}

// Error codes shared across features.
const (
	CodeInvalidID         = "invalid_id"
	CodeInvalidJSON       = "invalid_json"
	CodeValidationFailed  = "validation_failed"
	CodeEmailExists       = "email_exists"
	CodeInvalidTransition = "invalid_transition"
	CodeRateLimited       = "rate_limited"
)

// InvalidID is the 400 returned for a path id that is not a valid ObjectID.
func InvalidID() *Error {
	return Validation("Invalid ID format").WithCode(CodeInvalidID)
}

// As extracts an *Error from err. Errors that are not *Error come back as Internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
