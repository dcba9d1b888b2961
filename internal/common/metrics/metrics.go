// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssistRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_requests_total",
			Help: "Total number of assist requests by intent and provider",
		},
		[]string{"intent", "provider"},
	)

	AssistRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_requests_failed_total",
			Help: "Total number of assist requests that ended in the error envelope",
		},
		[]string{"intent", "error_code"},
	)

	AssistRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assist_request_duration_seconds",
			Help: "Duration of assist request handling in seconds",
		},
		[]string{"intent"},
	)

	CollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_collaborator_calls_total",
			Help: "Calls to external collaborators by service and outcome",
		},
		[]string{"service", "outcome"},
	)

	GeocodeCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assist_geocode_cache_total",
			Help: "Geocode cache lookups by result",
		},
		[]string{"result"},
	)
)
