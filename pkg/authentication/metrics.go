package authentication

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks Prometheus metrics for htpasswd authentication.
//
// Methods handle a nil receiver, so a nil *Metrics is a no-op.
type Metrics struct {
	// Verifications counts authentication attempts by outcome.
	// Labels: result=[none, malformed_credential, storage_unavailable,
	//                 username_not_found, password_incorrect, unknown]
	Verifications *prometheus.CounterVec

	// Schemes counts stored hashes checked, by detected scheme.
	// Labels: scheme=[des, sha1, apr1, bcrypt, argon2id, unknown]
	Schemes *prometheus.CounterVec

	// Duration tracks the time spent per authentication attempt.
	Duration prometheus.Histogram
}

// NewMetrics creates the authentication metrics and registers them.
// If registerer is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "htauth_verifications_total",
				Help: "Total htpasswd authentication attempts by result",
			},
			[]string{"result"},
		),
		Schemes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "htauth_hash_schemes_total",
				Help: "Total stored hashes verified by detected hash scheme",
			},
			[]string{"scheme"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "htauth_verification_duration_seconds",
				Help:    "Duration of htpasswd authentication attempts",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	registerer.MustRegister(m.Verifications, m.Schemes, m.Duration)
	return m
}

// RecordResult records the outcome and duration of one attempt
func (m *Metrics) RecordResult(kind FailureKind, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(string(kind)).Inc()
	m.Duration.Observe(elapsed.Seconds())
}

// RecordScheme records the scheme of a stored hash that was checked
func (m *Metrics) RecordScheme(scheme Scheme) {
	if m == nil {
		return
	}
	m.Schemes.WithLabelValues(string(scheme)).Inc()
}
