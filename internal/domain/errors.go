package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Services wrap them in *Error so callers can still match
// with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyReleased   = errors.New("funds already released")
	ErrDuplicateReview   = errors.New("duplicate submission")
	ErrNotEligible       = errors.New("no completed donation")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ErrorKind is the machine readable category of an Error.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindForbidden         ErrorKind = "forbidden"
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindInternal          ErrorKind = "internal"
)

// Error is the single error type returned by the service layer.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

// Unauthorized reports a missing or invalid identity.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg, Status: http.StatusUnauthorized, Err: ErrUnauthorized}
}

// Forbidden reports a known identity acting outside its role or ownership.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg, Status: http.StatusForbidden, Err: ErrForbidden}
}

// NotEligible reports a review or feedback from someone who never donated.
func NotEligible(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg, Status: http.StatusForbidden, Err: ErrNotEligible}
}

// NotFound reports a missing resource, e.g. NotFound("campaign").
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found", Status: http.StatusNotFound, Err: ErrNotFound}
}

// Conflict reports a state clash. cause should be one of the sentinels.
func Conflict(cause error, msg string) *Error {
	if cause == nil {
		cause = ErrConflict
	}
	return &Error{Kind: KindConflict, Message: msg, Status: http.StatusConflict, Err: cause}
}

// InsufficientFunds reports an amount larger than the available balance.
func InsufficientFunds(msg string) *Error {
	return &Error{Kind: KindInsufficientFunds, Message: msg, Status: http.StatusUnprocessableEntity, Err: ErrInsufficientFunds}
}

// Internal wraps an unexpected failure. The message shown to clients is generic.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Status: http.StatusInternalServerError, Err: err}
}

// AsError normalizes any error into *Error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return &Error{Kind: KindNotFound, Message: "resource not found", Status: http.StatusNotFound, Err: err}
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized("unauthorized")
	case errors.Is(err, ErrForbidden):
		return Forbidden("forbidden")
	case errors.Is(err, ErrNotEligible):
		return NotEligible("no completed donation")
	case errors.Is(err, ErrInsufficientFunds):
		return InsufficientFunds("insufficient funds")
	case errors.Is(err, ErrAlreadyReleased),
		errors.Is(err, ErrDuplicateReview),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrConflict):
		return Conflict(err, err.Error())
	}
	return Internal(err)
}
