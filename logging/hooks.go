package logging

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/turbomanage/httpclient"
)

// Hooks returns lifecycle hooks that log to zl: retries at warn level,
// failures and exhaustion at error level, dispatches and cache hits at
// debug level.
func Hooks(zl zerolog.Logger) httpclient.Hooks {
	return httpclient.Hooks{
		OnDispatch: func(req *httpclient.Request) {
			ev := zl.Debug()
			if req != nil {
				ev = ev.Stringer("method", req.Method()).Str("path", req.Path())
			}

			ev.Msg("request dispatched")
		},
		OnRetry: func(attempt int, connectTimeout time.Duration, err error) {
			zl.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("connect_timeout", connectTimeout).
				Msg("request timed out, retrying")
		},
		OnError: func(res *httpclient.Response, err error) {
			ev := zl.Error().Err(err)
			if res != nil {
				ev = ev.Int("status", res.StatusCode()).Str("url", res.URL())
			}

			ev.Msg("request failed")
		},
		OnExhausted: func(err error) {
			zl.Error().Err(err).Msg("request retries exhausted")
		},
		OnCacheHit: func(key string) {
			zl.Debug().Str("key", key).Msg("response served from cache")
		},
	}
}
