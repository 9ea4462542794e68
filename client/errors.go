package client

import (
	"net/http"

	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
	"github.com/dlrkawo/aitutor-lms/client/internal/shardqueue"
)

// Error is the tagged failure returned by every client operation except
// context cancellation, which is returned as ctx.Err().
type Error = lmserrors.Error

// Kind tags an Error.
type Kind = lmserrors.Kind

const (
	// KindNetwork marks transport failures: DNS, refused or reset connections.
	KindNetwork = lmserrors.KindNetwork
	// KindHTTPStatus marks non-2xx answers from the backend itself.
	KindHTTPStatus = lmserrors.KindHTTPStatus
	// KindProxyUnavailable marks tunnel error pages served instead of the backend.
	KindProxyUnavailable = lmserrors.KindProxyUnavailable
	// KindValidation marks input rejected before any request is sent.
	KindValidation = lmserrors.KindValidation
)

// ErrQueueFull is returned when the upload queue stays full past its
// enqueue timeout.
var ErrQueueFull = shardqueue.ErrQueueFull

// ErrClosed is returned by upload operations after Close.
var ErrClosed = shardqueue.ErrExecutorClosed

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind { return lmserrors.KindOf(err) }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// IsHTTPStatus reports whether err is a non-2xx backend answer.
func IsHTTPStatus(err error) bool { return KindOf(err) == KindHTTPStatus }

// IsProxyUnavailable reports whether err came from a tunnel error page.
func IsProxyUnavailable(err error) bool { return KindOf(err) == KindProxyUnavailable }

// IsValidation reports whether err rejected input before sending.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e, ok := lmserrors.As(err); ok {
		return e.StatusCode
	}
	return 0
}

// IsUnauthenticated reports whether the backend rejected the bearer token.
func IsUnauthenticated(err error) bool {
	return IsHTTPStatus(err) && StatusCode(err) == http.StatusUnauthorized
}

// NewStatusError builds the error an HTTP status answer maps to. Fakes use it
// to fail the same way the real backend does.
func NewStatusError(statusCode int, message, url string) *Error {
	return lmserrors.NewHTTPError(statusCode, http.StatusText(statusCode), message, "", url)
}

// NewValidationError builds a KindValidation error.
func NewValidationError(format string, args ...any) *Error {
	return lmserrors.NewValidationError(format, args...)
}
