// Package workpool provides a bounded [httpclient.ExecutorFactory]: at most
// a fixed number of dispatched requests execute at once, optionally paced by
// a token-bucket rate limit.
//
//	pool := workpool.New(8, workpool.WithRateLimit(rate.Limit(50), 5))
//	defer pool.Close()
//
//	client := httpclient.NewClient(base, httpclient.WithExecutorFactory(pool))
package workpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/turbomanage/httpclient"
)

type poolError string

func (e poolError) Error() string { return string(e) }

// Sentinel errors delivered to callbacks.
var (
	// ErrPoolClosed is reported for requests dispatched after Close.
	ErrPoolClosed error = poolError("workpool: pool closed")
	// ErrPoolFull is reported in reject mode when every slot is busy.
	ErrPoolFull error = poolError("workpool: pool full")
)

// Pool runs dispatched requests with bounded concurrency.
//
// Pattern: Bulkhead - a weighted semaphore caps concurrent executions.
type Pool struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter
	wg      sync.WaitGroup
	active  atomic.Int64
	size    int64
	mu      sync.RWMutex
	closed  bool
	reject  bool
}

// Option configures a [Pool].
type Option func(*Pool)

// WithRateLimit paces request starts to limit per second with the given
// burst.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(p *Pool) {
		p.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithRejectWhenFull makes the pool report [ErrPoolFull] instead of queueing
// when every slot is busy.
func WithRejectWhenFull() Option {
	return func(p *Pool) {
		p.reject = true
	}
}

// New creates a pool running at most size requests at once. Values below 1
// mean a single slot.
func New(size int, opts ...Option) *Pool {
	p := &Pool{size: int64(max(size, 1))}

	for _, opt := range opts {
		opt(p)
	}

	p.sem = semaphore.NewWeighted(p.size)

	return p
}

// Executor implements [httpclient.ExecutorFactory].
//
//nolint:ireturn // factory seam returns the executor interface
func (p *Pool) Executor(c *httpclient.Client, cb httpclient.Callback) httpclient.Executor {
	return httpclient.ExecutorFunc(func(ctx context.Context, req *httpclient.Request) {
		p.submit(ctx, c, req, cb)
	})
}

// submit never blocks the caller. Rejections (closed pool, full pool in
// reject mode) are delivered to cb on the calling goroutine.
func (p *Pool) submit(ctx context.Context, c *httpclient.Client, req *httpclient.Request, cb httpclient.Callback) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		cb.OnError(ErrPoolClosed)

		return
	}

	acquired := false
	if p.reject {
		if !p.sem.TryAcquire(1) {
			p.mu.RUnlock()
			cb.OnError(ErrPoolFull)

			return
		}

		acquired = true
	}

	p.wg.Add(1)
	p.mu.RUnlock()

	go p.run(ctx, c, req, cb, acquired)
}

func (p *Pool) run(
	ctx context.Context,
	c *httpclient.Client,
	req *httpclient.Request,
	cb httpclient.Callback,
	acquired bool,
) {
	defer p.wg.Done()

	if !acquired {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			cb.OnError(fmt.Errorf("workpool: acquire slot: %w", err))
			return
		}
	}

	defer p.sem.Release(1)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			cb.OnError(fmt.Errorf("workpool: rate limit: %w", err))
			return
		}
	}

	p.active.Add(1)
	defer p.active.Add(-1)

	c.Complete(ctx, req, cb)
}

// Size returns the maximum number of concurrent executions.
func (p *Pool) Size() int { return int(p.size) }

// Active returns the number of requests currently executing.
func (p *Pool) Active() int { return int(p.active.Load()) }

// Wait blocks until every request submitted so far has completed.
func (p *Pool) Wait() { p.wg.Wait() }

// Close stops accepting requests and waits for in-flight ones to finish.
// Calling Close more than once is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
}
