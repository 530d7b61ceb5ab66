package gateway

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks outbound request counts by method and status class
type Metrics struct {
	RequestsTotal *prometheus.CounterVec
}

// NewMetrics registers gateway metrics on the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "registro_gateway_requests_total",
			Help: "Total number of outbound API requests",
		}, []string{"method", "status"}),
	}
}

// ObserveRequest records one completed (or failed) request. A status of 0
// means no response was received.
func (m *Metrics) ObserveRequest(method string, status int) {
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(method, label).Inc()
}
