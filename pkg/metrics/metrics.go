package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lumen_ws_connections_active",
		Help: "Number of live websocket connections",
	})

	HandshakesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_ws_handshakes_total",
		Help: "Websocket handshake attempts",
	}, []string{"status"})

	EventsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_ws_events_relayed_total",
		Help: "Events delivered to websocket connections",
	}, []string{"type"})

	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_messages_total",
		Help: "Messages persisted, by origin",
	}, []string{"origin"})

	GenerationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_generation_requests_total",
		Help: "Reply generation requests",
	}, []string{"model", "status"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lumen_generation_duration_seconds",
		Help:    "Reply generation duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"model"})
)
