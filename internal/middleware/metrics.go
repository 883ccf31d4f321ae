package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailures counts rejected bearer credentials by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openboard_auth_failures_total",
		Help: "Total number of rejected authentication attempts",
	}, []string{"reason"})

	// StorageOperations counts file store operations by kind and outcome.
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openboard_storage_operations_total",
		Help: "Total number of file store operations",
	}, []string{"operation", "outcome"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-metrics handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
