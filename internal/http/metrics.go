package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/keika299/conoha/pkg/conoha"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
)

// MethodOther labels requests whose method is not a standard HTTP method.
const MethodOther = "other"

// Metrics collects request counts and latencies.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "conoha",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of API requests by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "conoha",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "API request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	for _, collector := range []prometheus.Collector{metrics.requestsTotal, metrics.requestDuration} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, err //nolint:wrapcheck // registration errors are self-describing
		}
	}

	return metrics, nil
}

func (m *Metrics) observe(method string, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess

	if conohaErr, ok := conoha.AsError(err); ok {
		outcome = string(conohaErr.Kind)
	}

	label := methodLabel(method)

	m.requestsTotal.WithLabelValues(label, outcome).Inc()
	m.requestDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// methodLabel keeps the method label set bounded.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return MethodOther
	}
}
