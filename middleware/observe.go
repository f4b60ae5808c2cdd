package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/careercode/jobportal/logging/observes"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func route(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}

// Metrics records request count and latency per route template.
func (m *Middleware) Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.collector.HTTPRequest(c.Request.Method, route(c), c.Writer.Status(), time.Since(start))
	}
}

// Tracing opens a handler span per request.
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := observes.StartSpan(c.Request.Context(), observes.LayerHandler,
			c.Request.Method+" "+route(c),
			semconv.HTTPRequestMethodKey.String(c.Request.Method),
			semconv.HTTPRoute(route(c)),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
		var err error
		if status >= http.StatusInternalServerError {
			err = errors.New(http.StatusText(status))
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
		}
		observes.EndSpan(span, err)
	}
}

// Sentry reports errors attached to 5xx responses, and panics, to the
// configured Sentry hub. Panics are re-raised for gin's recovery.
func Sentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		defer func() {
			if r := recover(); r != nil {
				hub.RecoverWithContext(c.Request.Context(), r)
				panic(r)
			}
		}()

		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		for _, e := range c.Errors {
			hub.CaptureException(e.Err)
		}
	}
}
