package errors

import "fmt"

// categoryForStatus maps HTTP status codes to error categories.
// 4xx client errors are irrecoverable except 408 and 429; 5xx are recoverable.
func categoryForStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes - be conservative and retry
		return Recoverable
	}
}

// NewHTTPError creates a KindHTTPStatus error for a non-2xx response.
func NewHTTPError(statusCode int, status, message, body, url string) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		Category:   categoryForStatus(statusCode),
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
		URL:        url,
		Body:       body,
	}
}

// NewProxyError creates a KindProxyUnavailable error for a tunnel error page.
// Tunnel failures are transient from the client's point of view.
func NewProxyError(statusCode int, status string, offline bool, body, url string) *Error {
	return &Error{
		Kind:       KindProxyUnavailable,
		Category:   Recoverable,
		StatusCode: statusCode,
		Status:     status,
		URL:        url,
		Offline:    offline,
		Body:       body,
	}
}

// NewNetworkError creates a KindNetwork error; diagnostic is the operator-facing text.
func NewNetworkError(url, diagnostic string, err error) *Error {
	return &Error{
		Kind:       KindNetwork,
		Category:   Recoverable,
		Message:    diagnostic,
		URL:        url,
		Underlying: err,
	}
}

// NewValidationError creates a KindValidation error.
func NewValidationError(format string, args ...any) *Error {
	return &Error{
		Kind:     KindValidation,
		Category: Irrecoverable,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WrapValidation creates a KindValidation error around err.
func WrapValidation(what string, err error) *Error {
	return &Error{
		Kind:       KindValidation,
		Category:   Irrecoverable,
		Message:    fmt.Sprintf("%s: %v", what, err),
		Underlying: err,
	}
}
