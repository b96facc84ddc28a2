package httpclient

import "time"

// Pattern: Factory Function - each preset produces a ready-made option bundle
// for a common use case.

// StandardClient returns the default profile: 2s connect timeout, 8s read
// timeout, 3 attempts with a doubling connect timeout.
func StandardClient() []Option {
	return []Option{
		WithConnectTimeout(DefaultConnectTimeout),
		WithReadTimeout(DefaultReadTimeout),
		WithMaxRetries(DefaultMaxRetries),
	}
}

// PatientClient returns options for slow or distant servers: 5s connect
// timeout capped at 1m through doubling, 30s read timeout, 5 attempts, and
// a timeout is only retried if the attempt really ran that long.
func PatientClient() []Option {
	return []Option{
		WithConnectTimeout(5 * time.Second),
		WithReadTimeout(30 * time.Second),
		WithMaxRetries(5),
		WithMaxConnectTimeout(time.Minute),
		WithElapsedTimeoutCheck(),
	}
}
