package httpclient

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"syscall"
	"time"
)

// ---------------------------------------------------------------------------
// Timeout classification
// ---------------------------------------------------------------------------

// IsTimeout reports whether err is a timeout-class failure: somewhere in its
// cause chain there is a connect/read timeout or a socket-level failure
// that is not an immediate connection refusal. Refused connections are
// never timeout-class. Returns false for nil.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if isTimeoutNode(err) {
		return true
	}

	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return IsTimeout(u.Unwrap())
	case interface{ Unwrap() []error }:
		for _, next := range u.Unwrap() {
			if IsTimeout(next) {
				return true
			}
		}
	}

	// Bottom of the chain.
	return false
}

// isTimeoutNode classifies a single link of the cause chain without looking
// at its causes.
func isTimeoutNode(err error) bool {
	if isRefusal(err) {
		return false
	}

	if err == os.ErrDeadlineExceeded || err == context.DeadlineExceeded { //nolint:errorlint // node-level identity check
		return true
	}

	if ne, ok := err.(net.Error); ok && ne.Timeout() { //nolint:errorlint // node-level type check
		return true
	}

	// Socket-level failures (reset, broken pipe, unreachable) share the
	// timeout family. Name resolution failures do not.
	opErr, ok := err.(*net.OpError) //nolint:errorlint // node-level type check
	if !ok {
		return false
	}

	var dnsErr *net.DNSError

	return !errors.As(opErr.Err, &dnsErr)
}

// isRefusal reports whether err itself signals an immediate refusal.
func isRefusal(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "refused")
}

// elapsedFudge compensates for timer granularity when comparing the
// elapsed attempt time against a configured timeout.
const elapsedFudge = 10 * time.Millisecond

// timedOutByElapsed reports whether an attempt that failed with err ran at
// least as long as the timeout it most likely hit: the connect timeout for
// dial failures, the read timeout otherwise.
func timedOutByElapsed(err error, elapsed time.Duration, tm timeouts) bool {
	limit := tm.read

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		limit = tm.connect
	}

	return elapsed+elapsedFudge >= limit
}
