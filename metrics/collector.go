// Package metrics records request, store and identity metrics.
package metrics

import (
	"strconv"
	"time"
)

// Collector receives metrics from every layer. Methods never block or fail.
type Collector interface {
	HTTPRequest(method, route string, status int, duration time.Duration)
	MongoOperation(collection, operation string, duration time.Duration, err error)
	TokenVerification(outcome string)
	HealthCheck(component string, healthy bool)
}

// Token verification outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// StatusClass buckets an HTTP status, e.g. 404 -> "4xx".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}

// NoOpCollector implements Collector with no-op methods
type NoOpCollector struct{}

func (NoOpCollector) HTTPRequest(string, string, int, time.Duration)      {}
func (NoOpCollector) MongoOperation(string, string, time.Duration, error) {}
func (NoOpCollector) TokenVerification(string)                            {}
func (NoOpCollector) HealthCheck(string, bool)                            {}
