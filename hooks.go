package httpclient

import "time"

// Hooks holds optional callback functions for request lifecycle events. All
// fields are nil by default; callers set only the hooks they care about.
// Once handed to a [Client], a Hooks value must not be mutated: emit
// methods read the function fields without synchronisation.
//
// Hooks are the error collaborator of the client: OnError is where
// non-recoverable failures are reported besides the returned error or the
// async callback.
type Hooks struct {
	// OnDispatch fires once per asynchronously dispatched request.
	OnDispatch func(req *Request)
	// OnRetry fires after a timeout-class failure when another attempt
	// follows. attempt is 1-indexed; connectTimeout is the value the next
	// attempt will use.
	OnRetry func(attempt int, connectTimeout time.Duration, err error)
	// OnError fires exactly once for a failure that is not retried. res is
	// the partial response, possibly nil.
	OnError func(res *Response, err error)
	// OnExhausted fires when every attempt failed with a timeout-class
	// error.
	OnExhausted func(err error)
	// OnCacheHit fires when a GET is served from the response cache.
	OnCacheHit func(key string)
}

// CombineHooks returns Hooks that invoke every non-nil hook of hs in order.
func CombineHooks(hs ...Hooks) Hooks {
	return Hooks{
		OnDispatch: func(req *Request) {
			for i := range hs {
				hs[i].emitDispatch(req)
			}
		},
		OnRetry: func(attempt int, connectTimeout time.Duration, err error) {
			for i := range hs {
				hs[i].emitRetry(attempt, connectTimeout, err)
			}
		},
		OnError: func(res *Response, err error) {
			for i := range hs {
				hs[i].emitError(res, err)
			}
		},
		OnExhausted: func(err error) {
			for i := range hs {
				hs[i].emitExhausted(err)
			}
		},
		OnCacheHit: func(key string) {
			for i := range hs {
				hs[i].emitCacheHit(key)
			}
		},
	}
}

func (h *Hooks) emitDispatch(req *Request) {
	if h.OnDispatch != nil {
		h.OnDispatch(req)
	}
}

func (h *Hooks) emitRetry(attempt int, connectTimeout time.Duration, err error) {
	if h.OnRetry != nil {
		h.OnRetry(attempt, connectTimeout, err)
	}
}

func (h *Hooks) emitError(res *Response, err error) {
	if h.OnError != nil {
		h.OnError(res, err)
	}
}

func (h *Hooks) emitExhausted(err error) {
	if h.OnExhausted != nil {
		h.OnExhausted(err)
	}
}

func (h *Hooks) emitCacheHit(key string) {
	if h.OnCacheHit != nil {
		h.OnCacheHit(key)
	}
}
