// Package middleware provides the gin middleware chain: request ids, access
// logging, tracing, metrics, error reporting, identity verification and the
// email ownership check.
package middleware

import (
	"errors"

	"github.com/careercode/jobportal/consts"
	"github.com/careercode/jobportal/ctxutil"
	"github.com/careercode/jobportal/ecode"
	"github.com/careercode/jobportal/logging/logger"
	"github.com/careercode/jobportal/metrics"
	"github.com/careercode/jobportal/net/resp"
	"github.com/careercode/jobportal/security/identity"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Middleware holds what the gates need.
type Middleware struct {
	verifier  identity.Verifier
	collector metrics.Collector
}

// New creates a Middleware. A nil collector records nothing.
func New(verifier identity.Verifier, collector metrics.Collector) *Middleware {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &Middleware{verifier: verifier, collector: collector}
}

// Auth verifies the bearer token once and stores the Identity on the request context.
func (m *Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := m.verifier.Verify(ctx, c.GetHeader(consts.AuthorizationKey))
		if err != nil {
			m.collector.TokenVerification(verificationOutcome(err))
			logger.WithFields(ctx, logrus.Fields{"error": err.Error()}).Warn("token verification failed")
			resp.Fail(c.Writer, resp.FromError(err))
			c.Abort()
			return
		}
		m.collector.TokenVerification(metrics.OutcomeAccepted)

		c.Request = c.Request.WithContext(ctxutil.SetIdentity(ctx, id))
		c.Next()
	}
}

// EmailVerify requires the email query parameter to equal the verified email.
// It must run after Auth and never touches the store.
func (m *Middleware) EmailVerify() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ctxutil.GetIdentity(c.Request.Context())
		if !ok {
			resp.Fail(c.Writer, resp.UnAuthorized("unauthorized access"))
			c.Abort()
			return
		}
		if c.Query(consts.EmailQueryKey) != id.Email {
			resp.Fail(c.Writer, resp.Forbidden("forbidden access"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func verificationOutcome(err error) string {
	if errors.Is(err, ecode.ErrUnauthenticated) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
