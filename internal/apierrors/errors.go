// Package apierrors defines errors that are safe to show to API clients.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind string

const (
	KindConflict           Kind = "conflict"
	KindUnauthorized       Kind = "unauthorized"
	KindNotFound           Kind = "not_found"
	KindExpired            Kind = "expired"
	KindValidation         Kind = "validation"
	KindBadRequest         Kind = "bad_request"
	KindTooManyRequests    Kind = "too_many_requests"
	KindNotificationFailed Kind = "notification_failed"
	KindInternal           Kind = "internal"
)

var httpCodes = map[Kind]int{
	KindConflict:           http.StatusConflict,
	KindUnauthorized:       http.StatusUnauthorized,
	KindNotFound:           http.StatusNotFound,
	KindExpired:            http.StatusGone,
	KindValidation:         http.StatusUnprocessableEntity,
	KindBadRequest:         http.StatusBadRequest,
	KindTooManyRequests:    http.StatusTooManyRequests,
	KindNotificationFailed: http.StatusServiceUnavailable,
	KindInternal:           http.StatusInternalServerError,
}

// APIError carries a client-facing message and the HTTP status it maps to.
// Err is kept for logs and never rendered.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Message  string
	Err      error
}

// New creates an APIError of the given kind.
func New(kind Kind, message string) *APIError {
	code, ok := httpCodes[kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	return &APIError{Kind: kind, HTTPCode: code, Message: message}
}

// Wrap creates an APIError of the given kind that keeps err as its cause.
func Wrap(kind Kind, message string, err error) *APIError {
	apiErr := New(kind, message)
	apiErr.Err = err
	return apiErr
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first APIError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

func NewErrUsernameTaken(username string) *APIError {
	return New(KindConflict, fmt.Sprintf("username %q is already taken", username))
}

func NewErrEmailIsTaken(email string) *APIError {
	return New(KindConflict, fmt.Sprintf("email %q is already registered", email))
}

func NewErrInvalidCredentials() *APIError {
	return New(KindUnauthorized, "incorrect username or password")
}

func NewErrNotAuthenticated() *APIError {
	return New(KindUnauthorized, "not authenticated")
}

func NewErrAccountNotFound(email string) *APIError {
	return New(KindNotFound, fmt.Sprintf("user with email %q not found", email))
}

func NewErrEmailAlreadyVerified(email string) *APIError {
	return New(KindConflict, fmt.Sprintf("email %q is already verified", email))
}

func NewErrInvalidCode() *APIError {
	return New(KindUnauthorized, "invalid confirmation code")
}

func NewErrCodeExpired() *APIError {
	return New(KindExpired, "confirmation code has expired")
}

func NewErrValidation(message string) *APIError {
	return New(KindValidation, message)
}

func NewErrBadRequest(message string) *APIError {
	return New(KindBadRequest, message)
}

func NewErrTooManyRequests() *APIError {
	return New(KindTooManyRequests, "too many requests")
}

func NewErrNotificationFailed(err error) *APIError {
	return Wrap(KindNotificationFailed, "failed to send confirmation email, try again later", err)
}

func NewErrNotFound(what string) *APIError {
	return New(KindNotFound, fmt.Sprintf("%s not found", what))
}

func NewErrConflict(message string) *APIError {
	return New(KindConflict, message)
}

func NewErrInternalServerError(err error) *APIError {
	return Wrap(KindInternal, "internal server error", err)
}
