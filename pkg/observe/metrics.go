package observe

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "weather_lookup"

	// unmatchedPath labels requests no route handled.
	unmatchedPath = "unmatched"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	providerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Outbound weather provider calls by operation and result",
	}, []string{"operation", "result"})

	providerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Latency of outbound weather provider calls",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "weather",
		Name:      "lookups_total",
		Help:      "Weather lookups by entry point and outcome",
	}, []string{"entry", "outcome"})
)

// ObserveProviderCall records one outbound provider call.
func ObserveProviderCall(operation, result string, d time.Duration) {
	providerRequestsTotal.WithLabelValues(operation, result).Inc()
	providerRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveLookup records the outcome of one weather lookup.
func ObserveLookup(entry, outcome string) {
	lookupsTotal.WithLabelValues(entry, outcome).Inc()
}

// MetricsMiddleware records request metrics.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		path := routeLabel(c, fe)
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// routeLabel returns the registered route pattern. Fiber reports a request no
// route matched as a 404 or 405 error; c.Route() then still points at the
// last middleware, so those get a fixed label.
func routeLabel(c *fiber.Ctx, fe *fiber.Error) string {
	if fe != nil && (fe.Code == fiber.StatusNotFound || fe.Code == fiber.StatusMethodNotAllowed) {
		return unmatchedPath
	}
	if path := c.Route().Path; path != "" {
		return path
	}
	return unmatchedPath
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
