package httpclient

import "net/http"

// RequestLogger observes every attempt made by the synchronous executor.
// The executor checks Enabled once per attempt; a disabled logger costs
// nothing beyond that check.
type RequestLogger interface {
	// Enabled reports whether LogRequest and LogResponse should be called.
	Enabled() bool
	// LogRequest is called after the request is fully prepared and before
	// it is sent. body is the payload that will be written, or nil.
	LogRequest(req *http.Request, body []byte)
	// LogResponse is called exactly once per attempt with the response or
	// partial response, or nil when none could be read.
	LogResponse(res *Response)
}

// NopLogger is the default, disabled [RequestLogger].
type NopLogger struct{}

// Enabled always returns false.
func (NopLogger) Enabled() bool { return false }

// LogRequest does nothing.
func (NopLogger) LogRequest(*http.Request, []byte) {}

// LogResponse does nothing.
func (NopLogger) LogResponse(*Response) {}
