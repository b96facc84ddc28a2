package httpclient

import (
	"context"
	"fmt"
	"time"
)

// Pattern: Retry with Backoff - masks timeout-class failures by retrying
// with a growing connect timeout; any other failure stops the loop.

// TryMany executes req until it succeeds, fails with an error that is not
// timeout-class, or the attempt budget is used up.
//
// A non-timeout failure is reported to the OnError hook exactly once and
// returned unchanged. When every attempt timed out the returned error wraps
// [ErrRetriesExhausted] and the last cause, and OnExhausted fires.
func (c *Client) TryMany(ctx context.Context, req *Request) (*Response, error) {
	res, _, err := c.tryMany(ctx, req)
	return res, err
}

// tryMany additionally returns the attempt-scoped timeouts as they were
// after the last attempt.
func (c *Client) tryMany(ctx context.Context, req *Request) (*Response, timeouts, error) {
	tm := c.initialTimeouts()

	if req == nil {
		err := &RequestError{Err: ErrNilRequest}
		c.hooks.emitError(nil, err)

		return nil, tm, err
	}

	ctx = c.ensureRequestID(ctx)

	// Values below 1 still execute exactly once.
	maxAttempts := max(c.maxRetries, 1)

	var lastErr error

	for attempt := range maxAttempts {
		start := c.clock.Now()

		res, err := c.attempt(ctx, req, tm)
		if err == nil {
			return res, tm, nil
		}

		lastErr = err

		if !c.retryable(err, c.clock.Since(start), tm) || ctx.Err() != nil {
			c.hooks.emitError(PartialResponse(err), err)
			return nil, tm, err
		}

		tm.connect = c.nextConnectTimeout(attempt, tm.connect)

		if attempt < maxAttempts-1 {
			c.hooks.emitRetry(attempt+1, tm.connect, err)
		}
	}

	err := fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
	c.hooks.emitExhausted(err)

	return nil, tm, err
}

// retryable decides whether a failed attempt may be retried.
func (c *Client) retryable(err error, elapsed time.Duration, tm timeouts) bool {
	if c.retryIf != nil {
		return c.retryIf(err)
	}

	if !IsTimeout(err) {
		return false
	}

	if c.elapsedCheck {
		return timedOutByElapsed(err, elapsed, tm)
	}

	return true
}

// nextConnectTimeout applies the backoff strategy and the optional cap.
func (c *Client) nextConnectTimeout(attempt int, current time.Duration) time.Duration {
	next := c.backoff.Next(attempt, current)
	if c.maxConnectTimeout > 0 && next > c.maxConnectTimeout {
		next = c.maxConnectTimeout
	}

	return next
}

// Do executes req through the response cache (GET only, when configured)
// and the retry loop. It is the entry point of every synchronous and
// asynchronous convenience method.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return c.TryMany(ctx, req)
	}

	key, cacheable := c.cacheKey(req)
	if cacheable {
		if res, ok := c.cache.Get(key); ok {
			c.hooks.emitCacheHit(key)
			return res, nil
		}
	}

	res, err := c.TryMany(ctx, req)
	if err == nil && cacheable {
		c.cache.Set(key, res, c.cacheTTL)
	}

	return res, err
}

// ---------------------------------------------------------------------------
// Synchronous convenience methods
// ---------------------------------------------------------------------------

// Get executes a GET request; params are sent as the query string.
func (c *Client) Get(ctx context.Context, path string, params *Params) (*Response, error) {
	return c.Do(ctx, NewGet(path, params))
}

// Head executes a HEAD request; params are sent as the query string.
func (c *Client) Head(ctx context.Context, path string, params *Params) (*Response, error) {
	return c.Do(ctx, NewHead(path, params))
}

// Post executes a POST request with params sent as a form body.
func (c *Client) Post(ctx context.Context, path string, params *Params) (*Response, error) {
	return c.Do(ctx, NewPost(path, params))
}

// PostBody executes a POST request with arbitrary content.
func (c *Client) PostBody(ctx context.Context, path, contentType string, data []byte) (*Response, error) {
	return c.Do(ctx, NewPostBody(path, contentType, data))
}

// Put executes a PUT request with arbitrary content.
func (c *Client) Put(ctx context.Context, path, contentType string, data []byte) (*Response, error) {
	return c.Do(ctx, NewPut(path, contentType, data))
}

// Delete executes a DELETE request; params are sent as the query string.
func (c *Client) Delete(ctx context.Context, path string, params *Params) (*Response, error) {
	return c.Do(ctx, NewDelete(path, params))
}
