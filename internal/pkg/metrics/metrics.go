package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dispatch"

var (
	OffersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "offers_total", Help: "Offers by final status"},
		[]string{"status"},
	)
	DispatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "dispatch_outcomes_total", Help: "Dispatch pipelines by outcome"},
		[]string{"status"},
	)
	DispatchRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "dispatch_rounds", Help: "Rounds used per dispatch",
		Buckets: []float64{1, 2, 3, 4, 5},
	})
	AcceptRacesLost = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "accept_races_lost_total", Help: "Accepts rejected because the trip was already taken"},
	)
	BroadcastDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "broadcast_deliveries_total", Help: "Scoped position pushes by result"},
		[]string{"result"},
	)
	MatchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "match_latency_seconds", Help: "Candidate search latency",
		Buckets: prometheus.DefBuckets,
	})
	CandidatesFound = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "candidates_found", Help: "Candidates returned per search",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
	})
	TripTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "trip_transitions_total", Help: "Trip status changes"},
		[]string{"to"},
	)
	Settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "settlements_total", Help: "Settlement attempts by result"},
		[]string{"result"},
	)
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "ws_connections", Help: "Open websocket connections"},
	)
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "circuit_breaker_state", Help: "0 closed, 1 open, 2 half-open"},
		[]string{"name"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveSince records the elapsed time since start on h
func ObserveSince(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

// Register mounts the scrape endpoint
func Register(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// EchoMiddleware counts requests by route template, not raw path
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := prometheus.Labels{
				"method": c.Request().Method,
				"path":   path,
				"status": strconv.Itoa(status),
			}
			HTTPRequestsTotal.With(labels).Inc()
			HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
