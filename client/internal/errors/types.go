// Package errors provides the tagged error type returned by the SDK.
// Callers branch on Kind instead of matching message text; the Category
// drives retry policies in the async upload queue.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 404 Not Found, validation failures.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Kind tags the failure so callers can branch without inspecting text.
type Kind int

const (
	// KindNetwork: the request never produced an HTTP response.
	KindNetwork Kind = iota + 1
	// KindHTTPStatus: the backend answered with a non-2xx status.
	KindHTTPStatus
	// KindProxyUnavailable: the tunneling proxy answered with its own error page.
	KindProxyUnavailable
	// KindValidation: the request was rejected before it was sent.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindProxyUnavailable:
		return "proxy_unavailable"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is the single error type produced by the request contract.
type Error struct {
	Kind       Kind
	Category   ErrorCategory
	StatusCode int    // 0 for network and validation failures
	Status     string // status text, e.g. "Not Found"
	Message    string // backend message, validation detail or network diagnostic
	URL        string // attempted URL, empty for validation failures
	Offline    bool   // proxy failures only: the tunnel reported itself offline
	Body       string // raw error body for debugging
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("API Error (%d %s): %s", e.StatusCode, e.Status, e.Message)
	case KindProxyUnavailable:
		if e.Offline {
			return fmt.Sprintf("API Error (%d %s): tunnel is offline; it was shut down or lost its connection", e.StatusCode, e.Status)
		}
		return fmt.Sprintf("API Error (%d %s): tunnel error; check the tunnel status", e.StatusCode, e.Status)
	case KindValidation:
		return "validation failed: " + e.Message
	default:
		return e.Message
	}
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// As extracts *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return 0
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	if e, ok := As(err); ok {
		return e.Category == Irrecoverable
	}
	return false
}
