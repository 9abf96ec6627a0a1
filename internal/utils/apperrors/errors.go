package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error for HTTP mapping and logging.
type Kind string

const (
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindValidation    Kind = "VALIDATION"
	KindStorage       Kind = "STORAGE"
	KindUpstream      Kind = "UPSTREAM"
	KindEmptyReply    Kind = "EMPTY_REPLY"
	KindConfiguration Kind = "CONFIGURATION"
	KindInternal      Kind = "INTERNAL"
)

// AppError carries an error kind plus a stable machine-readable code that is
// safe to expose to clients. The wrapped error, if any, stays server-side.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Kind, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without an underlying cause.
func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// Wrap attaches kind and code metadata to an existing error.
func Wrap(err error, kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// CodeOf extracts the client-facing code from an error chain.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "internal_error"
}

// MessageOf extracts the client-safe message from an error chain.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to the outward status code. Authentication
// failures share one status regardless of which check failed, and provider
// failures are indistinguishable from empty replies on the wire.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstream, KindEmptyReply:
		return http.StatusBadGateway
	case KindStorage, KindConfiguration, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
