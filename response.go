package httpclient

import "net/http"

// Response is the immutable result of a completed request attempt: the
// status, headers and the whole body read into memory.
type Response struct {
	header     http.Header
	url        string
	body       []byte
	statusCode int
}

// NewResponse builds a Response value. The header and body are copied.
// It is exported for tests and custom executors.
func NewResponse(statusCode int, header http.Header, body []byte, url string) *Response {
	return &Response{
		statusCode: statusCode,
		header:     header.Clone(),
		body:       cloneBytes(body),
		url:        url,
	}
}

// newResponseNoCopy wraps freshly read data that nothing else references.
func newResponseNoCopy(resp *http.Response, body []byte) *Response {
	return &Response{
		statusCode: resp.StatusCode,
		header:     resp.Header,
		body:       body,
		url:        resp.Request.URL.String(),
	}
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int { return r.statusCode }

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header { return r.header.Clone() }

// HeaderValue returns the first value of the named header.
func (r *Response) HeaderValue(name string) string { return r.header.Get(name) }

// Body returns a copy of the response body.
func (r *Response) Body() []byte { return cloneBytes(r.body) }

// BodyString returns the body as a string.
func (r *Response) BodyString() string { return string(r.body) }

// URL returns the URL the response was received from.
func (r *Response) URL() string { return r.url }

