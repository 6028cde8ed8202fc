package metrics

import (
	"net/http"
	"strconv"
	"time"

	"atoll/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	CacheEventHit  = "hit"
	CacheEventMiss = "miss"
	CacheEventSet  = "set"
	CacheEventDel  = "del"

	EventStatusSent   = "sent"
	EventStatusFailed = "failed"
)

type Metrics interface {
	ObserveHTTP(route, method string, status int, duration time.Duration)
	ObserveCache(cache, event string)
	ObserveEvent(topic, status string)
	ObserveBooking(status string)
	Handler() http.Handler
}

type prometheusMetrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	cacheEvents  *prometheus.CounterVec
	events       *prometheus.CounterVec
	bookings     *prometheus.CounterVec
}

func New(cfg *config.Config) Metrics {
	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = "atoll"
	}

	m := &prometheusMetrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
			[]string{"cache", "event"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "published_events_total", Help: "Domain events published to the broker."},
			[]string{"topic", "status"},
		),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "bookings_total", Help: "Booking state changes."},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.cacheEvents,
		m.events,
		m.bookings,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *prometheusMetrics) ObserveHTTP(route, method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *prometheusMetrics) ObserveCache(cache, event string) {
	m.cacheEvents.WithLabelValues(cache, event).Inc()
}

func (m *prometheusMetrics) ObserveEvent(topic, status string) {
	m.events.WithLabelValues(topic, status).Inc()
}

func (m *prometheusMetrics) ObserveBooking(status string) {
	m.bookings.WithLabelValues(status).Inc()
}

func (m *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
