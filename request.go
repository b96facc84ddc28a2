package httpclient

import "strings"

// Content types used by the request constructors.
const (
	// ContentTypeForm is sent with parameter maps encoded as a form body.
	ContentTypeForm = "application/x-www-form-urlencoded;charset=UTF-8"
	// ContentTypeJSON is the content type of JSON bodies.
	ContentTypeJSON = "application/json"
	// ContentTypeMultipart is the content type of multipart bodies.
	ContentTypeMultipart = "multipart/form-data"
)

// Request describes one HTTP call before execution. It is immutable once
// built: accessors return copies and nothing in this package modifies a
// Request after construction.
type Request struct {
	path        string
	contentType string
	body        []byte
	method      Method
}

// NewGet builds a GET request; params are encoded in the query string.
func NewGet(path string, params *Params) *Request {
	return newQueryRequest(MethodGet, path, params)
}

// NewHead builds a HEAD request; params are encoded in the query string.
func NewHead(path string, params *Params) *Request {
	return newQueryRequest(MethodHead, path, params)
}

// NewDelete builds a DELETE request; params are encoded in the query string.
func NewDelete(path string, params *Params) *Request {
	return newQueryRequest(MethodDelete, path, params)
}

// NewPost builds a POST request whose body is the form encoding of params.
// The content type is always [ContentTypeForm].
func NewPost(path string, params *Params) *Request {
	return newFormRequest(MethodPost, path, params)
}

// NewPutParams builds a PUT request whose body is the form encoding of
// params.
func NewPutParams(path string, params *Params) *Request {
	return newFormRequest(MethodPut, path, params)
}

// NewPostBody builds a POST request with arbitrary content.
func NewPostBody(path, contentType string, body []byte) *Request {
	return newBodyRequest(MethodPost, path, contentType, body)
}

// NewPut builds a PUT request with arbitrary content.
func NewPut(path, contentType string, body []byte) *Request {
	return newBodyRequest(MethodPut, path, contentType, body)
}

// NewRequest builds a request for any method. Use it when a query-string
// method needs an explicit body or content type.
func NewRequest(method Method, path, contentType string, body []byte) *Request {
	return newBodyRequest(method, path, contentType, body)
}

func newQueryRequest(m Method, path string, params *Params) *Request {
	return &Request{method: m, path: appendQuery(path, params.Encode())}
}

func newFormRequest(m Method, path string, params *Params) *Request {
	r := &Request{method: m, path: path, contentType: ContentTypeForm}
	if params != nil {
		r.body = []byte(params.Encode())
	}

	return r
}

func newBodyRequest(m Method, path, contentType string, body []byte) *Request {
	return &Request{
		method:      m,
		path:        path,
		contentType: contentType,
		body:        cloneBytes(body),
	}
}

// appendQuery joins path and an encoded query. An empty query leaves the
// path unchanged.
func appendQuery(path, query string) string {
	if query == "" {
		return path
	}

	if strings.Contains(path, "?") {
		return path + "&" + query
	}

	return path + "?" + query
}

// Path returns the path (with query string) relative to the base URL.
func (r *Request) Path() string { return r.path }

// Method returns the request method.
func (r *Request) Method() Method { return r.method }

// ContentType returns the content type, or "" when none is set.
func (r *Request) ContentType() string { return r.contentType }

// Body returns a copy of the request body, or nil.
func (r *Request) Body() []byte { return cloneBytes(r.body) }

// writesBody reports whether the write phase runs for this request.
func (r *Request) writesBody() bool {
	return r.method.HasBody() && len(r.body) > 0
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out
}
