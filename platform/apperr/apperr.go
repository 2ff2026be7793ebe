// Package apperr defines the typed errors domain services return. The HTTP
// layer maps the Kind to a status code, so handlers never pick codes
// themselves.
package apperr

import "net/http"

// Kind categorizes an error for HTTP mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthorized
	KindBadRequest
	KindInternal
	// KindGone marks a resource that existed but is no longer available,
	// such as an expired public quote link.
	KindGone
)

// Error is a domain error with a typed Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error       // underlying cause, optional
	Details interface{} // extra payload for the error response, optional
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap supports errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for this error's kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInternal:
		return http.StatusInternalServerError
	case KindGone:
		return http.StatusGone
	default:
		return http.StatusBadRequest
	}
}

// New creates a domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetails attaches a payload that the error response will carry.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// NotFound marks a missing resource.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation marks invalid input.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Conflict marks a clash with existing state, typically a duplicate.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Unauthorized marks missing or failed authentication.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// BadRequest marks a malformed request.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Gone marks an expired or withdrawn resource.
func Gone(message string) *Error {
	return New(KindGone, message)
}
