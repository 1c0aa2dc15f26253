package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ReservationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "reservation_transitions_total", Help: "Reservation lifecycle transitions."},
		[]string{"from", "to"},
	)
	AvailabilityConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotel", Name: "availability_conflicts_total", Help: "Bookings rejected due to overlapping stays."},
	)
	NotificationDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "notification_deliveries_total", Help: "Outbox dispatch outcomes."},
		[]string{"channel", "outcome"}, // outcome: sent|failed
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ReservationTransitions, AvailabilityConflicts, NotificationDeliveries, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveTransition(from, to string) {
	ReservationTransitions.WithLabelValues(from, to).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveDelivery(channel, outcome string) {
	NotificationDeliveries.WithLabelValues(channel, outcome).Inc()
}
