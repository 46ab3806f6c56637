package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	contractsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_contracts_generated_total",
		Help: "Contracts generated, by contract type and insert/update action",
	}, []string{"contract_type", "action"})

	signaturesCaptured = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_signatures_captured_total",
		Help: "Signatures captured, by signer type",
	}, []string{"signer_type"})

	bookingStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_status_changes_total",
		Help: "Booking status transitions, by resulting status",
	}, []string{"status"})

	rateResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_rate_responses_total",
		Help: "Musician responses to proposed rates",
	}, []string{"response"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveContractGenerated counts one contract generation.
func ObserveContractGenerated(contractType, action string) {
	contractsGenerated.WithLabelValues(contractType, action).Inc()
}

// ObserveSignature counts one captured signature.
func ObserveSignature(signerType string) {
	signaturesCaptured.WithLabelValues(signerType).Inc()
}

// ObserveBookingStatus counts one booking status transition.
func ObserveBookingStatus(status string) {
	bookingStatusChanges.WithLabelValues(status).Inc()
}

// ObserveRateResponse counts one musician rate response.
func ObserveRateResponse(response string) {
	rateResponses.WithLabelValues(response).Inc()
}
