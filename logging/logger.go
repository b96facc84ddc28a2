package logging

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/turbomanage/httpclient"
)

// DefaultMaxBodyBytes is the number of body bytes written per event unless
// changed with [WithMaxBodyBytes].
const DefaultMaxBodyBytes = 1024

// Logger is an [httpclient.RequestLogger] writing to a zerolog logger.
type Logger struct {
	zl           zerolog.Logger
	level        zerolog.Level
	maxBodyBytes int
	headers      bool
}

// Option configures a [Logger].
type Option func(*Logger)

// WithLevel sets the level of request and response events. Defaults to
// debug.
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// WithMaxBodyBytes caps the logged body. Zero omits bodies, a negative
// value logs them in full.
func WithMaxBodyBytes(n int) Option {
	return func(l *Logger) {
		l.maxBodyBytes = n
	}
}

// WithHeaders includes request and response headers in events.
func WithHeaders() Option {
	return func(l *Logger) {
		l.headers = true
	}
}

// New returns a Logger writing to zl.
func New(zl zerolog.Logger, opts ...Option) *Logger {
	l := &Logger{
		zl:           zl,
		level:        zerolog.DebugLevel,
		maxBodyBytes: DefaultMaxBodyBytes,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Enabled reports whether events at the configured level would be written.
func (l *Logger) Enabled() bool {
	return l.zl.GetLevel() <= l.level && l.level != zerolog.Disabled
}

// LogRequest writes the prepared request.
func (l *Logger) LogRequest(req *http.Request, body []byte) {
	ev := l.zl.WithLevel(l.level).
		Str("method", req.Method).
		Str("url", req.URL.String())

	if id, ok := httpclient.RequestID(req.Context()); ok {
		ev = ev.Str("request_id", id)
	}

	if l.headers {
		ev = ev.Interface("header", req.Header)
	}

	l.withBody(ev, body).Msg("http request")
}

// LogResponse writes the response, or notes that none was received.
func (l *Logger) LogResponse(res *httpclient.Response) {
	if res == nil {
		l.zl.WithLevel(l.level).Msg("http response: none")
		return
	}

	ev := l.zl.WithLevel(l.level).
		Int("status", res.StatusCode()).
		Str("url", res.URL())

	if l.headers {
		ev = ev.Interface("header", res.Header())
	}

	l.withBody(ev, res.Body()).Msg("http response")
}

func (l *Logger) withBody(ev *zerolog.Event, body []byte) *zerolog.Event {
	if len(body) == 0 || l.maxBodyBytes == 0 {
		return ev
	}

	if l.maxBodyBytes > 0 && len(body) > l.maxBodyBytes {
		return ev.Bytes("body", body[:l.maxBodyBytes]).Bool("body_truncated", true)
	}

	return ev.Bytes("body", body)
}
