// Package api exposes the scheduling core over HTTP, replacing the
// original implementation's one-shot AWS Lambda handler with a long-lived
// service endpoint.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khryptorgraphics/mcpscheduler/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// Config configures the HTTP server.
type Config struct {
	Listen             string
	RateLimitPerSecond float64
	RateLimitBurst     int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
}

// Server wraps a gin engine and the http.Server it drives.
type Server struct {
	config  Config
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	metrics *Metrics
}

// New builds a Server with the scheduling, health, and metrics routes
// registered.
func New(cfg Config, logger *logging.Logger) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config:  cfg,
		router:  router,
		logger:  logger,
		metrics: newMetrics(),
	}

	router.Use(requestIDMiddleware())
	router.Use(s.loggingMiddleware())
	router.Use(rateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", s.handleMetrics)
	router.POST("/v1/schedules", s.handleSchedule)

	s.http = &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Run starts the HTTP server and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Listen).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestIDMiddleware assigns a correlation id to every request, honoring
// one supplied by the caller and otherwise minting a fresh one, so a run can
// be traced across the log line and the response header.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
