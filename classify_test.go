package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"deadline exceeded", os.ErrDeadlineExceeded, true},
		{"context deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("read body: %w", os.ErrDeadlineExceeded), true},
		{"joined", errors.Join(errors.New("x"), os.ErrDeadlineExceeded), true},
		{"dial timeout", dialTimeout(), true},
		{"url error", &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{
			Op: "read", Net: "tcp", Err: os.ErrDeadlineExceeded,
		}}, true},
		{"connection reset", &net.OpError{
			Op: "read", Net: "tcp", Err: os.NewSyscallError("read", syscall.ECONNRESET),
		}, true},
		{"refused", refused(), false},
		{"refused message", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, false},
		{"dns failure", &net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{Err: "no such host", Name: "x"}}, false},
		{"dns timeout", &net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{
			Err: "timeout", Name: "x", IsTimeout: true,
		}}, true},
		{"status", &RequestError{Err: &StatusError{StatusCode: 503}}, false},
		{"invalid url", &RequestError{Err: &InvalidURLError{URL: "x"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Fatalf("IsTimeout(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTimedOutByElapsed(t *testing.T) {
	tm := timeouts{connect: time.Second, read: 5 * time.Second}

	if !timedOutByElapsed(dialTimeout(), 995*time.Millisecond, tm) {
		t.Fatal("dial within fudge of connect timeout should count")
	}

	if timedOutByElapsed(dialTimeout(), 500*time.Millisecond, tm) {
		t.Fatal("early dial failure should not count")
	}

	if timedOutByElapsed(readTimeout(), 2*time.Second, tm) {
		t.Fatal("read failure before read timeout should not count")
	}

	if !timedOutByElapsed(readTimeout(), 5*time.Second, tm) {
		t.Fatal("read failure at read timeout should count")
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestRequestErrorMessages(t *testing.T) {
	err := &RequestError{Err: &StatusError{StatusCode: 404}}
	if got, want := err.Error(), "request failed: http status 404"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	err.Response = NewResponse(404, nil, nil, "http://x/items")
	if got, want := err.Error(), "request http://x/items failed: http status 404"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != 404 {
		t.Fatal("errors.As(*StatusError) failed")
	}

	if PartialResponse(err) != err.Response {
		t.Fatal("PartialResponse() did not return the attached response")
	}

	if PartialResponse(errors.New("x")) != nil {
		t.Fatal("PartialResponse(plain) != nil")
	}
}

func TestInvalidURLErrorMessage(t *testing.T) {
	cause := errors.New("bad port")
	err := &InvalidURLError{URL: "http://x:y", Err: cause}

	if got, want := err.Error(), `"http://x:y" is not a valid URL: bad port`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(cause) = false")
	}
}

func TestSentinelErrors(t *testing.T) {
	for _, err := range []error{ErrRetriesExhausted, ErrPanic, ErrNilRequest} {
		if err.Error() == "" {
			t.Fatal("sentinel with empty message")
		}

		wrapped := fmt.Errorf("ctx: %w", err)
		if !errors.Is(wrapped, err) {
			t.Fatalf("errors.Is(wrapped, %v) = false", err)
		}
	}
}
