package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnsuccessful is returned when the API answers with "success": false.
var ErrUnsuccessful = errors.New("api reported failure")

// HTTPStatusError captures endpoint failures by status code.
type HTTPStatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s status %d: %s", e.Endpoint, e.Status, e.Body)
}

// DecodeError wraps a malformed response payload.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies fetch failures for logging and the status line.
type ErrorKind string

const (
	ErrorUnknown      ErrorKind = "unknown"
	ErrorCanceled     ErrorKind = "canceled"
	ErrorTimeout      ErrorKind = "timeout"
	ErrorRateLimit    ErrorKind = "rate_limit"
	ErrorHTTP         ErrorKind = "http"
	ErrorUnsuccessful ErrorKind = "unsuccessful"
	ErrorDecode       ErrorKind = "decode"
	ErrorTransport    ErrorKind = "transport"
)

// ClassifyError maps a fetch error to its kind.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	if errors.Is(err, ErrUnsuccessful) {
		return ErrorUnsuccessful
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.Status == http.StatusTooManyRequests {
			return ErrorRateLimit
		}
		return ErrorHTTP
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return ErrorDecode
	}

	return ErrorTransport
}

// Describe returns a short human readable hint for a fetch error.
func Describe(err error) string {
	switch ClassifyError(err) {
	case ErrorCanceled:
		return "request canceled"
	case ErrorTimeout:
		return "request timed out"
	case ErrorRateLimit:
		return "rate limited by the API, try again shortly"
	case ErrorUnsuccessful:
		return "the API reported a failure"
	case ErrorDecode:
		return "unexpected response from the API"
	case ErrorHTTP:
		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.Status >= 500 {
			return fmt.Sprintf("API service error (%d)", statusErr.Status)
		}
		if statusErr != nil {
			return fmt.Sprintf("API request failed (%d)", statusErr.Status)
		}
		return "API request failed"
	case ErrorTransport:
		return "API unreachable"
	default:
		return "request failed"
	}
}
