package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error into the taxonomy the API surfaces.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindQuotaExceeded
	KindConflict
	KindInvalidPlan
)

// Error is an application error with a client-facing message. The message is
// safe to return verbatim; raw store/driver errors are wrapped as internal
// and never leak their text.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Unauthenticated(msg string) *Error { return newError(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error       { return newError(KindForbidden, msg) }
func NotFound(msg string) *Error        { return newError(KindNotFound, msg) }
func Validation(msg string) *Error      { return newError(KindValidation, msg) }
func QuotaExceeded(msg string) *Error   { return newError(KindQuotaExceeded, msg) }
func Conflict(msg string) *Error        { return newError(KindConflict, msg) }
func InvalidPlan(msg string) *Error     { return newError(KindInvalidPlan, msg) }

// Internal wraps an unexpected failure. The wrapped error is kept for logs
// only; the client sees a generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal server error", Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not an
// application error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an application error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the HTTP status code the API responds with
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindInvalidPlan:
		return http.StatusBadRequest
	case KindQuotaExceeded:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
