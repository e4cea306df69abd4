package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's collectors. They are registered on a
// per-server registry so several servers can live in one process.
type metrics struct {
	// requests counts handled requests.
	// Labels: route (gin full path or "unmatched"), method, code
	requests *prometheus.CounterVec

	// latency measures handler latency in seconds.
	// Labels: route
	latency *prometheus.HistogramVec

	// overlaps counts items rejected for a colliding time window.
	// Labels: kind (task, subtask)
	overlaps *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kanban",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kanban",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP handler latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		overlaps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kanban",
			Subsystem: "engine",
			Name:      "overlap_rejections_total",
			Help:      "Items rejected because their time window overlaps another item",
		}, []string{"kind"}),
	}
}
