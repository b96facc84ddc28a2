// Package metrics exports httpclient lifecycle events as Prometheus
// metrics.
//
//	m := metrics.New(prometheus.DefaultRegisterer, "myapp")
//	client := httpclient.NewClient(base, httpclient.WithHooks(m.Hooks()))
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/turbomanage/httpclient"
)

// Metrics holds the Prometheus collectors fed by [Metrics.Hooks].
type Metrics struct {
	Dispatched     prometheus.Counter
	Retries        prometheus.Counter
	ConnectTimeout prometheus.Histogram
	Errors         *prometheus.CounterVec
	Exhausted      prometheus.Counter
	CacheHits      prometheus.Counter
}

// New creates the collectors and registers them with reg under namespace.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Dispatched: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "dispatched_total",
				Help:      "Total number of asynchronously dispatched requests",
			},
		),
		Retries: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "retries_total",
				Help:      "Total number of retries after a timeout-class failure",
			},
		),
		ConnectTimeout: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "retry_connect_timeout_seconds",
				Help:      "Connect timeout used by retry attempts",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10), // 500ms to ~4m
			},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "errors_total",
				Help:      "Total number of failed requests by HTTP status (none when no status was received)",
			},
			[]string{"status"},
		),
		Exhausted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "exhausted_total",
				Help:      "Total number of requests that used up every attempt",
			},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "cache_hits_total",
				Help:      "Total number of GET requests served from the response cache",
			},
		),
	}
}

// Hooks returns lifecycle hooks that update m. Combine them with other hooks
// through [httpclient.CombineHooks].
func (m *Metrics) Hooks() httpclient.Hooks {
	return httpclient.Hooks{
		OnDispatch: func(*httpclient.Request) {
			m.Dispatched.Inc()
		},
		OnRetry: func(_ int, connectTimeout time.Duration, _ error) {
			m.Retries.Inc()
			m.ConnectTimeout.Observe(connectTimeout.Seconds())
		},
		OnError: func(_ *httpclient.Response, err error) {
			m.Errors.WithLabelValues(statusLabel(err)).Inc()
		},
		OnExhausted: func(error) {
			m.Exhausted.Inc()
		},
		OnCacheHit: func(string) {
			m.CacheHits.Inc()
		},
	}
}

func statusLabel(err error) string {
	var se *httpclient.StatusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.StatusCode)
	}

	return "none"
}
