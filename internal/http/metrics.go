package http

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-route request counts and latencies.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with registerer. Registering twice
// against the same registerer reuses the existing collectors.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "now_client",
		Name:      "requests_total",
		Help:      "Requests sent to the API, by method, route and status code.",
	}, []string{"method", "route", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "now_client",
		Name:      "request_duration_seconds",
		Help:      "Round trip latency of API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registeredRequests, err := register(registerer, requests)
	if err != nil {
		return nil, err
	}

	registeredDuration, err := register(registerer, duration)
	if err != nil {
		return nil, err
	}

	return &Metrics{requests: registeredRequests, duration: registeredDuration}, nil
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	alreadyRegistered := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

// Interceptor returns a response interceptor feeding these metrics. Failed round
// trips are counted with code "error".
func (m *Metrics) Interceptor() ResponseInterceptor {
	return func(ctx context.Context, req Request, resp *Response, err error) {
		code := "error"
		if err == nil && resp != nil {
			code = strconv.Itoa(resp.StatusCode)
			m.duration.WithLabelValues(req.Method, req.Route).Observe(resp.Duration.Seconds())
		}

		m.requests.WithLabelValues(req.Method, req.Route, code).Inc()
	}
}

// WithMetrics records request metrics in registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		if registerer == nil {
			return
		}

		metrics, err := NewMetrics(registerer)
		if err != nil {
			c.metricsErr = err

			return
		}

		c.interceptors = append(c.interceptors, metrics.Interceptor())
	}
}
