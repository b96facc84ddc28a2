package httpclient

import (
	"context"
	"fmt"
)

// ---------------------------------------------------------------------------
// Callbacks
// ---------------------------------------------------------------------------

// Callback receives the outcome of an asynchronous request. Exactly one of
// its methods is invoked, exactly once, per dispatched request.
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

// ---------------------------------------------------------------------------
// Executor factory seam
// ---------------------------------------------------------------------------

// Executor runs one request off the caller's goroutine and reports its
// outcome to the callback it was created with.
type Executor interface {
	Execute(ctx context.Context, req *Request)
}

// ExecutorFunc adapts a plain function into an [Executor].
type ExecutorFunc func(ctx context.Context, req *Request)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, req *Request) { f(ctx, req) }

// ExecutorFactory produces the Executor for one dispatched request. It is
// the only place concurrency enters the client: implementations decide
// whether work runs on a new goroutine, a bounded pool, or elsewhere. Every
// Executor is expected to finish by calling [Client.Complete].
//
// Pattern: Abstract Factory - the dispatcher depends on "submit work,
// eventually get success or error", never on a concrete primitive.
type ExecutorFactory interface {
	Executor(c *Client, cb Callback) Executor
}

// ExecutorFactoryFunc adapts a plain function into an [ExecutorFactory].
type ExecutorFactoryFunc func(c *Client, cb Callback) Executor

// Executor calls f.
func (f ExecutorFactoryFunc) Executor(c *Client, cb Callback) Executor { return f(c, cb) }

// GoroutineFactory is the default [ExecutorFactory]: every request runs on
// its own goroutine.
type GoroutineFactory struct{}

// Executor returns an Executor that starts one goroutine per request.
func (GoroutineFactory) Executor(c *Client, cb Callback) Executor {
	return ExecutorFunc(func(ctx context.Context, req *Request) {
		go c.Complete(ctx, req, cb)
	})
}

// ---------------------------------------------------------------------------
// Dispatcher
// ---------------------------------------------------------------------------

// ExecuteAsync dispatches req through the executor factory and returns
// immediately. The outcome is delivered to cb. Once dispatched, the request
// is not cancelled by ctx: it runs to success, failure or exhaustion.
func (c *Client) ExecuteAsync(ctx context.Context, req *Request, cb Callback) {
	if cb == nil {
		cb = CallbackFuncs{}
	}

	c.hooks.emitDispatch(req)
	c.factory.Executor(c, cb).Execute(context.WithoutCancel(ctx), req)
}

// Complete runs req through [Client.Do] on the calling goroutine and
// delivers the outcome to cb: OnSuccess with the response, or OnError with
// the error. A panic while executing the request is recovered and reported
// as an error wrapping [ErrPanic]. Panics raised by cb itself are not
// recovered.
func (c *Client) Complete(ctx context.Context, req *Request, cb Callback) {
	res, err := c.safeDo(ctx, req)
	if err != nil {
		cb.OnError(err)
		return
	}

	cb.OnSuccess(res)
}

func (c *Client) safeDo(ctx context.Context, req *Request) (res *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return c.Do(ctx, req)
}

// ---------------------------------------------------------------------------
// Asynchronous convenience methods
// ---------------------------------------------------------------------------

// GetAsync dispatches a GET request.
func (c *Client) GetAsync(ctx context.Context, path string, params *Params, cb Callback) {
	c.ExecuteAsync(ctx, NewGet(path, params), cb)
}

// HeadAsync dispatches a HEAD request.
func (c *Client) HeadAsync(ctx context.Context, path string, params *Params, cb Callback) {
	c.ExecuteAsync(ctx, NewHead(path, params), cb)
}

// PostAsync dispatches a POST request with params sent as a form body.
func (c *Client) PostAsync(ctx context.Context, path string, params *Params, cb Callback) {
	c.ExecuteAsync(ctx, NewPost(path, params), cb)
}

// PostBodyAsync dispatches a POST request with arbitrary content.
func (c *Client) PostBodyAsync(ctx context.Context, path, contentType string, data []byte, cb Callback) {
	c.ExecuteAsync(ctx, NewPostBody(path, contentType, data), cb)
}

// PutAsync dispatches a PUT request with arbitrary content.
func (c *Client) PutAsync(ctx context.Context, path, contentType string, data []byte, cb Callback) {
	c.ExecuteAsync(ctx, NewPut(path, contentType, data), cb)
}

// DeleteAsync dispatches a DELETE request.
func (c *Client) DeleteAsync(ctx context.Context, path string, params *Params, cb Callback) {
	c.ExecuteAsync(ctx, NewDelete(path, params), cb)
}
