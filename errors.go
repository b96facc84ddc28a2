package httpclient

import (
	"errors"
	"strconv"
)

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

type (
	// RequestError wraps any failure of a single request attempt. Response
	// holds the best-effort partial response (for example the body of a
	// 404) and is nil when no response could be read at all.
	RequestError struct {
		// Err is the first cause of the failure. Secondary failures while
		// reading the error body never replace it.
		Err error
		// Response is the partial response captured on the failure path.
		Response *Response
	}

	// InvalidURLError is returned when base URL and path do not combine
	// into a usable absolute URL. It is detected before any network I/O.
	InvalidURLError struct {
		Err error
		URL string
	}

	// StatusError reports an HTTP status code of 400 or above.
	StatusError struct {
		StatusCode int
	}

	// clientError is the concrete type backing all sentinel errors.
	clientError string
)

// Sentinel errors.
var (
	// ErrRetriesExhausted is returned when every attempt failed with a
	// timeout-class error.
	ErrRetriesExhausted error = clientError("retries exhausted")
	// ErrPanic is reported to a callback when asynchronous work panicked.
	ErrPanic error = clientError("panic in request execution")
	// ErrNilRequest is returned when a nil *Request is executed.
	ErrNilRequest error = clientError("nil request")
)

func (e clientError) Error() string { return string(e) }

func (e *RequestError) Error() string {
	if e.Response != nil {
		return "request " + e.Response.URL() + " failed: " + e.Err.Error()
	}

	return "request failed: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *InvalidURLError) Error() string {
	msg := strconv.Quote(e.URL) + " is not a valid URL"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// Error returns a human-readable description of the status error.
func (e *StatusError) Error() string {
	return "http status " + strconv.Itoa(e.StatusCode)
}

// PartialResponse returns the partial response attached to the first
// RequestError in err's chain, or nil.
func PartialResponse(err error) *Response {
	var re *RequestError
	if !errors.As(err, &re) {
		return nil
	}

	return re.Response
}
