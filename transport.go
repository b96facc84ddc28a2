package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// timeouts is the attempt-scoped timeout state threaded through the retry
// loop. It never lives on the Client, so concurrent requests cannot see
// each other's backoff.
type timeouts struct {
	connect time.Duration
	read    time.Duration
}

type (
	timeoutsKey  struct{}
	requestIDKey struct{}
)

func withTimeouts(ctx context.Context, tm timeouts) context.Context {
	return context.WithValue(ctx, timeoutsKey{}, tm)
}

func timeoutsFrom(ctx context.Context) timeouts {
	tm, _ := ctx.Value(timeoutsKey{}).(timeouts)
	return tm
}

// WithRequestIDContext returns a context carrying id as the request ID used
// for the request-ID header. Without it the client generates a fresh ID per
// logical request.
func WithRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID carried by ctx, if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// ensureRequestID makes sure every attempt of one logical request shares
// a single ID.
func (c *Client) ensureRequestID(ctx context.Context) context.Context {
	if c.requestIDHeader == "" {
		return ctx
	}

	if _, ok := RequestID(ctx); ok {
		return ctx
	}

	return WithRequestIDContext(ctx, uuid.NewString())
}

// newTransport returns an HTTP/1.1 transport that applies the attempt's
// connect timeout when dialing and its read timeout as a per-read
// inactivity deadline. Connections are not reused.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DialContext:       dialContext,
		DisableKeepAlives: true,
		ForceAttemptHTTP2: false,
	}
}

func dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	tm := timeoutsFrom(ctx)

	d := &net.Dialer{Timeout: tm.connect}

	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err //nolint:wrapcheck // the dial error is the classified cause
	}

	if tm.read > 0 {
		return &deadlineConn{Conn: conn, read: tm.read}, nil
	}

	return conn, nil
}

// deadlineConn arms a read deadline before every Read, so a read blocks at
// most read without receiving data.
type deadlineConn struct {
	net.Conn
	read time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if err := c.SetReadDeadline(time.Now().Add(c.read)); err != nil {
		return 0, err //nolint:wrapcheck // transport-level error
	}

	return c.Conn.Read(b) //nolint:wrapcheck // transport-level error
}

// NewCookieJar returns a cookie jar that honours the public suffix list.
// Every Client gets one by default so cookies set by a server are sent back
// on later requests.
func NewCookieJar() http.CookieJar {
	// cookiejar.New always returns a nil error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}
