// Package metrics holds the Prometheus collectors of the server. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// mutations counts committed and failed mutations by operation and result
	mutations *prometheus.CounterVec
	// lockWait tracks time spent waiting for a library lease
	lockWait prometheus.Histogram
	// commitDuration tracks lease-to-commit latency by operation
	commitDuration *prometheus.HistogramVec
	// visibilityTransitions counts groups entering or leaving search
	visibilityTransitions *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "libsync_mutations_total",
			Help: "Total library mutations by operation and result",
		}, []string{"operation", "result"}),
		lockWait: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "libsync_lock_wait_seconds",
			Help:    "Time spent waiting for a library lease",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}),
		commitDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "libsync_mutation_duration_seconds",
			Help:    "Mutation duration from lease to commit in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"operation"}),
		visibilityTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "libsync_visibility_transitions_total",
			Help: "Group search visibility transitions by direction",
		}, []string{"direction"}),
	}
}

// Result maps a mutation error to the result label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrLockTimeout):
		return "lock_timeout"
	case errors.Is(err, common.ErrStorageUnavailable):
		return "unavailable"
	case errors.Is(err, common.ErrVersionConflict), errors.Is(err, common.ErrStaleVersion):
		return "conflict"
	case errors.Is(err, common.ErrorNotFound):
		return "not_found"
	case errors.Is(err, common.ErrorValidation):
		return "invalid"
	default:
		return "error"
	}
}

func (m *Metrics) ObserveMutation(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, Result(err)).Inc()
	if err == nil {
		m.commitDuration.WithLabelValues(op).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(d.Seconds())
}

func (m *Metrics) ObserveVisibility(shown bool) {
	if m == nil {
		return
	}
	direction := "hidden"
	if shown {
		direction = "shown"
	}
	m.visibilityTransitions.WithLabelValues(direction).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
