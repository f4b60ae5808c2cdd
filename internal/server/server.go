// Package server assembles the gin engine and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/consts"
	"github.com/careercode/jobportal/handler"
	"github.com/careercode/jobportal/logging/logger"
	"github.com/careercode/jobportal/middleware"
	"github.com/careercode/jobportal/net/resp"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Banner is the liveness response of GET /.
const Banner = "Career Code is Cooking"

// HealthChecker reports the state of backing services.
type HealthChecker interface {
	Health(ctx context.Context) map[string]any
}

type Server struct {
	cfg      *config.Config
	handler  *handler.Handler
	mw       *middleware.Middleware
	health   HealthChecker
	gatherer prometheus.Gatherer
	engine   *gin.Engine
}

// New creates a Server. A nil gatherer disables /metrics.
func New(cfg *config.Config, h *handler.Handler, mw *middleware.Middleware, health HealthChecker, gatherer prometheus.Gatherer) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if h == nil || mw == nil {
		return nil, fmt.Errorf("handler and middleware are required")
	}
	return &Server{cfg: cfg, handler: h, mw: mw, health: health, gatherer: gatherer}, nil
}

// SetupRouter builds the engine once.
func (s *Server) SetupRouter() *gin.Engine {
	if s.engine != nil {
		return s.engine
	}
	if s.cfg.RunMode != "" {
		gin.SetMode(s.cfg.RunMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Sentry())
	r.Use(middleware.Trace(), middleware.Logger(), middleware.Tracing(), s.mw.Metrics())
	r.Use(cors.New(corsConfig(s.cfg.CORS)))

	r.GET("/", func(c *gin.Context) {
		resp.Text(c.Writer, http.StatusOK, Banner)
	})
	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound("route not found"))
	})
	r.GET("/health", s.handleHealth)
	if s.gatherer != nil && s.cfg.Metrics.Enabled {
		r.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	s.handler.RegisterRoutes(r, s.mw)

	s.engine = r
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.health == nil {
		resp.Success(c.Writer, map[string]any{"status": "healthy"})
		return
	}
	report := s.health.Health(c.Request.Context())
	if report["status"] != "healthy" {
		resp.WithStatusCode(c.Writer, http.StatusServiceUnavailable, report)
		return
	}
	resp.Success(c.Writer, report)
}

func corsConfig(c *config.CORS) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", consts.AuthorizationKey, consts.TraceKey},
		ExposeHeaders:    []string{consts.TraceKey},
		AllowCredentials: c.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(c.AllowOrigins) == 0 || slices.Contains(c.AllowOrigins, "*") {
		cc.AllowAllOrigins = true
		// browsers refuse credentials with a wildcard origin
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = c.AllowOrigins
	}
	return cc
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      s.SetupRouter(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "server is running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
