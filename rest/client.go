package rest

import (
	"context"
	"fmt"

	"github.com/turbomanage/httpclient"
)

// ResultHandler inspects a successful response before it is returned. A
// false result makes the call fail with [ErrResultRejected].
type ResultHandler func(res *httpclient.Response) bool

// Callback receives the outcome of an asynchronous call. Exactly one of its
// methods is invoked, exactly once, per call.
type Callback interface {
	OnSuccess(res *Response)
	OnError(err error)
}

// CallbackFuncs adapts two plain functions into a [Callback]. A nil field
// ignores the corresponding outcome.
type CallbackFuncs struct {
	Success func(res *Response)
	Error   func(err error)
}

// OnSuccess calls Success if set.
func (f CallbackFuncs) OnSuccess(res *Response) {
	if f.Success != nil {
		f.Success(res)
	}
}

// OnError calls Error if set.
func (f CallbackFuncs) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

// Client sends and receives values through an [httpclient.Client].
//
// Pattern: Adapter - translates between Go values and the byte-oriented
// request and response types of httpclient.
type Client struct {
	hc      *httpclient.Client
	codec   Codec
	handler ResultHandler
}

// Option configures a [Client].
type Option func(*Client)

// WithCodec sets the codec. The default is [JSON].
func WithCodec(codec Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithResultHandler sets a handler that may reject successful responses.
func WithResultHandler(h ResultHandler) Option {
	return func(c *Client) {
		c.handler = h
	}
}

// New creates a Client delegating to hc.
func New(hc *httpclient.Client, opts ...Option) *Client {
	c := &Client{hc: hc, codec: JSON}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HTTP returns the underlying client.
func (c *Client) HTTP() *httpclient.Client { return c.hc }

// Codec returns the codec.
//
//nolint:ireturn // codec strategy is an interface
func (c *Client) Codec() Codec { return c.codec }

// ---------------------------------------------------------------------------
// Synchronous calls
// ---------------------------------------------------------------------------

// Get retrieves path; params are sent as the query string.
func (c *Client) Get(ctx context.Context, path string, params *httpclient.Params) (*Response, error) {
	return c.do(ctx, httpclient.NewGet(path, params))
}

// Post sends body marshaled with the codec. A nil body sends no content.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	req, err := c.bodyRequest(httpclient.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, req)
}

// Put sends body marshaled with the codec. A nil body sends no content.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	req, err := c.bodyRequest(httpclient.MethodPut, path, body)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, req)
}

// Delete deletes path; params are sent as the query string.
func (c *Client) Delete(ctx context.Context, path string, params *httpclient.Params) (*Response, error) {
	return c.do(ctx, httpclient.NewDelete(path, params))
}

// Get retrieves path through c and decodes the body into a new T.
//
//nolint:ireturn // generic type parameter T, not an interface
func Get[T any](ctx context.Context, c *Client, path string, params *httpclient.Params) (T, error) {
	res, err := c.Get(ctx, path, params)
	if err != nil {
		var zero T
		return zero, err
	}

	return As[T](res)
}

func (c *Client) do(ctx context.Context, req *httpclient.Request) (*Response, error) {
	raw, err := c.hc.Do(ctx, req)
	if err != nil {
		return nil, err //nolint:wrapcheck // httpclient errors are returned as is
	}

	return c.accept(raw)
}

// accept applies the result handler and wraps raw.
func (c *Client) accept(raw *httpclient.Response) (*Response, error) {
	if c.handler != nil && !c.handler(raw) {
		return nil, fmt.Errorf("%w: status %d", ErrResultRejected, raw.StatusCode())
	}

	return NewResponse(raw, c.codec), nil
}

func (c *Client) bodyRequest(m httpclient.Method, path string, body any) (*httpclient.Request, error) {
	if body == nil {
		return httpclient.NewRequest(m, path, c.codec.ContentType(), nil), nil
	}

	data, err := c.codec.Marshal(body)
	if err != nil {
		return nil, &CodecError{Op: "marshal", Err: err}
	}

	return httpclient.NewRequest(m, path, c.codec.ContentType(), data), nil
}

// ---------------------------------------------------------------------------
// Asynchronous calls
// ---------------------------------------------------------------------------

// GetAsync dispatches a GET.
func (c *Client) GetAsync(ctx context.Context, path string, params *httpclient.Params, cb Callback) {
	c.dispatch(ctx, httpclient.NewGet(path, params), cb)
}

// PostAsync dispatches a POST of body. A marshal failure is delivered to
// cb.OnError on the calling goroutine and nothing is sent.
func (c *Client) PostAsync(ctx context.Context, path string, body any, cb Callback) {
	c.dispatchBody(ctx, httpclient.MethodPost, path, body, cb)
}

// PutAsync dispatches a PUT of body. A marshal failure is delivered to
// cb.OnError on the calling goroutine and nothing is sent.
func (c *Client) PutAsync(ctx context.Context, path string, body any, cb Callback) {
	c.dispatchBody(ctx, httpclient.MethodPut, path, body, cb)
}

// DeleteAsync dispatches a DELETE.
func (c *Client) DeleteAsync(ctx context.Context, path string, params *httpclient.Params, cb Callback) {
	c.dispatch(ctx, httpclient.NewDelete(path, params), cb)
}

func (c *Client) dispatchBody(ctx context.Context, m httpclient.Method, path string, body any, cb Callback) {
	if cb == nil {
		cb = CallbackFuncs{}
	}

	req, err := c.bodyRequest(m, path, body)
	if err != nil {
		cb.OnError(err)
		return
	}

	c.dispatch(ctx, req, cb)
}

func (c *Client) dispatch(ctx context.Context, req *httpclient.Request, cb Callback) {
	if cb == nil {
		cb = CallbackFuncs{}
	}

	c.hc.ExecuteAsync(ctx, req, httpclient.CallbackFuncs{
		Success: func(raw *httpclient.Response) {
			res, err := c.accept(raw)
			if err != nil {
				cb.OnError(err)
				return
			}

			cb.OnSuccess(res)
		},
		Error: cb.OnError,
	})
}
