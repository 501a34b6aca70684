// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hotel-rooms/models"
)

type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RoomsByStatus       *prometheus.GaugeVec
}

// New registers every collector on a fresh registry so tests and multiple
// servers in one process do not collide on the global one.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotel_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		RoomsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hotel_rooms",
			Help: "Rooms in the inventory by occupancy status.",
		}, []string{"status"}),
	}

	m.Registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RoomsByStatus,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveInventory is meant to be passed to services.WithObserver.
func (m *Metrics) ObserveInventory(report models.AvailabilityReport) {
	m.RoomsByStatus.WithLabelValues("occupied").Set(float64(report.OccupiedCount))
	m.RoomsByStatus.WithLabelValues("vacant").Set(float64(report.VacantCount))
}
