package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
)

// ---------------------------------------------------------------------------
// Synchronous executor
// ---------------------------------------------------------------------------

// Execute performs a single attempt of req without retries and without the
// response cache. On failure the error is a *RequestError, the OnError hook
// fires once and the partial response is available through
// [PartialResponse].
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, &RequestError{Err: ErrNilRequest}
	}

	res, err := c.attempt(c.ensureRequestID(ctx), req, c.initialTimeouts())
	if err != nil {
		c.hooks.emitError(PartialResponse(err), err)
		return nil, err
	}

	return res, nil
}

// roundTrip drives one attempt through open, prepare, write and read. Every
// failure is returned as a *RequestError carrying the partial response when
// one could be read. The response body is always closed.
func (c *Client) roundTrip(ctx context.Context, req *Request, tm timeouts) (*Response, error) {
	var captured *Response

	if c.logger.Enabled() {
		defer func() { c.logger.LogResponse(captured) }()
	}

	target, err := c.resolve(req.Path())
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	var body io.Reader = http.NoBody
	if req.writesBody() {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(withTimeouts(ctx, tm), req.Method().String(), target, body)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	c.prepare(httpReq, req)

	if c.logger.Enabled() {
		c.logger.LogRequest(httpReq, req.Body())
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // body fully read or abandoned

	data, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if readErr != nil {
			// The error body is best effort; keep the status as the cause.
			return nil, &RequestError{Err: statusErr}
		}

		captured = newResponseNoCopy(resp, data)

		return nil, &RequestError{Err: statusErr, Response: captured}
	}

	if readErr != nil {
		captured = newResponseNoCopy(resp, nil)
		return nil, &RequestError{Err: readErr, Response: captured}
	}

	captured = newResponseNoCopy(resp, data)

	return captured, nil
}

// resolve joins the base URL and path and rejects anything that is not an
// absolute URL.
func (c *Client) resolve(path string) (string, error) {
	raw := c.baseURL + path

	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidURLError{URL: raw, Err: err}
	}

	if u.Scheme == "" || u.Host == "" {
		return "", &InvalidURLError{URL: raw}
	}

	return raw, nil
}

// prepare applies content type, default headers, the client's extra
// headers and the request ID, in that order.
func (c *Client) prepare(httpReq *http.Request, req *Request) {
	if ct := req.ContentType(); ct != "" {
		httpReq.Header.Set("Content-Type", ct)
	}

	httpReq.Header.Set("Accept-Charset", "UTF-8")

	c.mu.RLock()
	for name, value := range c.headers {
		httpReq.Header.Set(name, value)
	}
	c.mu.RUnlock()

	if c.requestIDHeader != "" {
		if id, ok := RequestID(httpReq.Context()); ok {
			httpReq.Header.Set(c.requestIDHeader, id)
		}
	}
}
