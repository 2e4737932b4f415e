// Package metrics holds the Prometheus collectors for gateway round trips
// and checkout outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Gateway API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Gateway API call latency by operation",
			Buckets: []float64{
				0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5, 8, 13,
			},
		},
		[]string{"operation"},
	)

	PaymentStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "checkout",
			Name:      "payment_status_total",
			Help:      "Payment statuses reported to order management",
		},
		[]string{"stage", "status"},
	)
)

// Gateway call outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeGatewayError   = "gateway_error"
	OutcomeTransportError = "transport_error"
	OutcomeFormatError    = "format_error"
)

func init() {
	prometheus.MustRegister(GatewayRequestsTotal, GatewayRequestDuration, PaymentStatusTotal)
}

func ObserveGatewayCall(operation, outcome string, elapsed time.Duration) {
	GatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	GatewayRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func IncPaymentStatus(stage, status string) {
	PaymentStatusTotal.WithLabelValues(stage, status).Inc()
}
