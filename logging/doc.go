// Package logging provides zerolog-backed observers for httpclient: a
// [httpclient.RequestLogger] that writes one debug event per request and
// response, and lifecycle [httpclient.Hooks] that log retries and failures.
//
// Basic usage:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client := httpclient.NewClient("https://api.example.com",
//		httpclient.WithRequestLogger(logging.New(zl)),
//		httpclient.WithHooks(logging.Hooks(zl)),
//	)
package logging
