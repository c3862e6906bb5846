package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// WebSocketConnections is the gauge of active WebSocket connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "warbler_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// RealtimeEvents counts realtime events published by type.
	RealtimeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_realtime_events_total",
		Help: "Total realtime events published by event type",
	}, []string{"event_type"})
)

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the HTTP metrics middleware, creating it on first use.
// fiberprometheus registers collectors globally, so repeated server
// construction (tests) must share one instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}
