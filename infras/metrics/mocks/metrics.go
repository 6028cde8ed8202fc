package mocks

import (
	"net/http"
	"time"

	"atoll/infras/metrics"
)

type metricsImpl struct{}

// ObserveHTTP implements metrics.Metrics.
func (m *metricsImpl) ObserveHTTP(_, _ string, _ int, _ time.Duration) {}

// ObserveCache implements metrics.Metrics.
func (m *metricsImpl) ObserveCache(_, _ string) {}

// ObserveEvent implements metrics.Metrics.
func (m *metricsImpl) ObserveEvent(_, _ string) {}

// ObserveBooking implements metrics.Metrics.
func (m *metricsImpl) ObserveBooking(_ string) {}

// Handler implements metrics.Metrics.
func (m *metricsImpl) Handler() http.Handler {
	return http.NotFoundHandler()
}

func NewMetrics() metrics.Metrics {
	return &metricsImpl{}
}
