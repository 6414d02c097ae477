// Package metrics defines the Prometheus metrics the CLI keeps about its API
// traffic. A command run is short-lived, so instead of serving /metrics the
// registry is flushed to a node_exporter textfile when the process exits.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recruit"

// Recorder owns a private registry and implements recruitsdk.Observer.
type Recorder struct {
	reg *prometheus.Registry

	// RequestsTotal counts finished API calls.
	// Labels:
	//   - method: HTTP method
	//   - route: path template (e.g. "/jobs/{id}")
	//   - outcome: "ok", "server_error", "auth_expired", "network_error" or "client_error"
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures API call latency by route.
	RequestDuration *prometheus.HistogramVec

	// SessionExpiredTotal counts forced logouts caused by a 401.
	SessionExpiredTotal prometheus.Counter
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API calls, by method, route and outcome.",
			},
			[]string{"method", "route", "outcome"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Duration of API calls from dispatch to classified result.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		SessionExpiredTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_expired_total",
				Help:      "Total number of sessions cleared because the API answered 401.",
			},
		),
	}
}

// ObserveRequest implements recruitsdk.Observer.
func (r *Recorder) ObserveRequest(method, route, outcome string, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(method, route, outcome).Inc()
	r.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile atomically writes every metric to path in the text
// exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
