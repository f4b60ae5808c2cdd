package middleware

import (
	"time"

	"github.com/careercode/jobportal/consts"
	"github.com/careercode/jobportal/ctxutil"
	"github.com/careercode/jobportal/logging/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Trace assigns a request id, taken from the X-Request-ID header when present,
// and records the client address on the request context.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		if traceID := c.GetHeader(consts.TraceKey); traceID != "" {
			ctx = ctxutil.SetTraceID(ctx, traceID)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		ctx = ctxutil.SetClientIP(ctx, ctxutil.ClientIPFromRequest(c.Request))

		c.Header(consts.TraceKey, traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Logger writes one access log line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()
		entry := logger.WithFields(ctx, logrus.Fields{
			"method":    method,
			"path":      path,
			"status":    status,
			"duration":  time.Since(start).String(),
			"client_ip": ctxutil.GetClientIP(ctx),
		})
		switch {
		case status >= 500:
			entry.Error("HTTP request")
		case status >= 400:
			entry.Warn("HTTP request")
		default:
			entry.Info("HTTP request")
		}
	}
}
