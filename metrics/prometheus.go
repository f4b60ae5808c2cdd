package metrics

import (
	"errors"
	"time"

	"github.com/careercode/jobportal/logging/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector on the prometheus client.
type PrometheusCollector struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	mongoOps       *prometheus.CounterVec
	mongoDuration  *prometheus.HistogramVec
	tokenVerifies  *prometheus.CounterVec
	componentState *prometheus.GaugeVec
}

// NewPrometheusCollector registers the service metrics on reg under namespace.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	c := &PrometheusCollector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status class.",
		}, []string{"method", "route", "status_class"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		mongoOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mongo_operations_total",
			Help:      "Total number of store operations by collection, operation and result.",
		}, []string{"collection", "operation", "result"}),
		mongoDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mongo_operation_duration_seconds",
			Help:      "Store operation latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"collection", "operation"}),
		tokenVerifies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_verifications_total",
			Help:      "Total number of bearer token verifications by outcome.",
		}, []string{"outcome"}),
		componentState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "component_healthy",
			Help:      "1 when the last health check of a component passed, else 0.",
		}, []string{"component"}),
	}

	c.httpRequests = register(reg, c.httpRequests)
	c.httpDuration = register(reg, c.httpDuration)
	c.mongoOps = register(reg, c.mongoOps)
	c.mongoDuration = register(reg, c.mongoDuration)
	c.tokenVerifies = register(reg, c.tokenVerifies)
	c.componentState = register(reg, c.componentState)
	return c
}

// register returns the collector already on reg when an identical one exists.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) T {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		logger.StdLogger().Logger.Warnf("failed to register metric: %v", err)
	}
	return col
}

func (c *PrometheusCollector) HTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, StatusClass(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *PrometheusCollector) MongoOperation(collection, operation string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.mongoOps.WithLabelValues(collection, operation, result).Inc()
	c.mongoDuration.WithLabelValues(collection, operation).Observe(d.Seconds())
}

func (c *PrometheusCollector) TokenVerification(outcome string) {
	c.tokenVerifies.WithLabelValues(outcome).Inc()
}

func (c *PrometheusCollector) HealthCheck(component string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	c.componentState.WithLabelValues(component).Set(v)
}
