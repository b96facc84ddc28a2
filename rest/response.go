package rest

import (
	"net/http"

	"github.com/turbomanage/httpclient"
)

// Response is an [httpclient.Response] whose body is decoded on demand
// with the codec of the client that produced it.
type Response struct {
	raw   *httpclient.Response
	codec Codec
}

// NewResponse wraps raw for decoding with codec. A nil codec means JSON.
func NewResponse(raw *httpclient.Response, codec Codec) *Response {
	if codec == nil {
		codec = JSON
	}

	return &Response{raw: raw, codec: codec}
}

// Raw returns the underlying response.
func (r *Response) Raw() *httpclient.Response { return r.raw }

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int { return r.raw.StatusCode() }

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header { return r.raw.Header() }

// Decode unmarshals the body into v. An empty body leaves v unchanged.
func (r *Response) Decode(v any) error {
	body := r.raw.Body()
	if len(body) == 0 {
		return nil
	}

	if err := r.codec.Unmarshal(body, v); err != nil {
		return &CodecError{Op: "unmarshal", Err: err}
	}

	return nil
}

// As decodes the body of res into a new T.
//
//nolint:ireturn // generic type parameter T, not an interface
func As[T any](res *Response) (T, error) {
	var v T

	err := res.Decode(&v)

	return v, err
}
