package workpool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/turbomanage/httpclient"
)

type recorder struct {
	mu        sync.Mutex
	successes int
	errs      []error
}

func (r *recorder) callback() httpclient.Callback {
	return httpclient.CallbackFuncs{
		Success: func(*httpclient.Response) {
			r.mu.Lock()
			r.successes++
			r.mu.Unlock()
		},
		Error: func(err error) {
			r.mu.Lock()
			r.errs = append(r.errs, err)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) counts() (int, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.successes, append([]error(nil), r.errs...)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			cur := peak.Load()
			if n <= cur || peak.CompareAndSwap(cur, n) {
				break
			}
		}

		time.Sleep(30 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pool := New(2)
	client := httpclient.NewClient(srv.URL, httpclient.WithExecutorFactory(pool))

	var rec recorder
	for range 6 {
		client.GetAsync(context.Background(), "/", nil, rec.callback())
	}

	pool.Wait()

	successes, errs := rec.counts()
	assert.Equal(t, 6, successes)
	assert.Empty(t, errs)
	assert.LessOrEqual(t, peak.Load(), int64(2))
	assert.Equal(t, 0, pool.Active())
	assert.Equal(t, 2, pool.Size())
}

func TestPoolClosedRejects(t *testing.T) {
	pool := New(1)
	pool.Close()
	pool.Close()

	client := httpclient.NewClient("http://127.0.0.1:1", httpclient.WithExecutorFactory(pool))

	var rec recorder
	client.GetAsync(context.Background(), "/", nil, rec.callback())

	successes, errs := rec.counts()
	assert.Zero(t, successes)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrPoolClosed)
}

func TestPoolRejectWhenFull(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pool := New(1, WithRejectWhenFull())
	client := httpclient.NewClient(srv.URL, httpclient.WithExecutorFactory(pool))

	var first, second recorder
	client.GetAsync(context.Background(), "/", nil, first.callback())
	<-started

	client.GetAsync(context.Background(), "/", nil, second.callback())

	_, errs := second.counts()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrPoolFull)

	close(release)
	pool.Close()

	successes, errs := first.counts()
	assert.Equal(t, 1, successes)
	assert.Empty(t, errs)
}

func TestPoolWithRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	pool := New(4, WithRateLimit(rate.Inf, 1))
	client := httpclient.NewClient(srv.URL, httpclient.WithExecutorFactory(pool))

	var rec recorder
	for range 3 {
		client.GetAsync(context.Background(), "/", nil, rec.callback())
	}

	pool.Close()

	successes, errs := rec.counts()
	assert.Equal(t, 3, successes)
	assert.Empty(t, errs)
}
