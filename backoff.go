package httpclient

import "time"

// TimeoutBackoff computes the connect timeout of the next attempt after a
// timeout-class failure.
//
// Pattern: Strategy - swap growth algorithms without changing the retry
// loop.
type TimeoutBackoff interface {
	// Next returns the connect timeout for the attempt following the given
	// failed attempt (0-indexed), whose connect timeout was current.
	Next(attempt int, current time.Duration) time.Duration
}

// ---------------------------------------------------------------------------
// BackoffFunc - adapter for plain functions
// ---------------------------------------------------------------------------

// BackoffFunc adapts an ordinary function into a [TimeoutBackoff].
type BackoffFunc func(attempt int, current time.Duration) time.Duration

// Next calls the underlying function.
func (f BackoffFunc) Next(attempt int, current time.Duration) time.Duration {
	return f(attempt, current)
}

// ---------------------------------------------------------------------------
// DoublingBackoff
// ---------------------------------------------------------------------------

type doublingBackoff struct{}

func (doublingBackoff) Next(_ int, current time.Duration) time.Duration {
	return current * 2
}

// DoublingBackoff returns the default [TimeoutBackoff]: every timeout-class
// failure doubles the connect timeout.
func DoublingBackoff() TimeoutBackoff {
	return doublingBackoff{}
}

// ---------------------------------------------------------------------------
// LinearBackoff
// ---------------------------------------------------------------------------

type linearBackoff struct {
	step time.Duration
}

func (b *linearBackoff) Next(_ int, current time.Duration) time.Duration {
	return current + b.step
}

// LinearBackoff returns a [TimeoutBackoff] that adds step to the connect
// timeout after every timeout-class failure.
func LinearBackoff(step time.Duration) TimeoutBackoff {
	return &linearBackoff{step: step}
}

// ---------------------------------------------------------------------------
// ConstantBackoff
// ---------------------------------------------------------------------------

type constantBackoff struct{}

func (constantBackoff) Next(_ int, current time.Duration) time.Duration {
	return current
}

// ConstantBackoff returns a [TimeoutBackoff] that keeps the connect timeout
// unchanged between attempts.
func ConstantBackoff() TimeoutBackoff {
	return constantBackoff{}
}
