// Package server exposes the symplot tools over HTTP.
//
// Endpoints:
//
//	POST /tool    execute a tool call
//	POST /sample  evaluate an expression over a grid
//	GET  /schema  tool schema for agent registration
//	GET  /health  liveness check
//	GET  /metrics Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/njchilds90/symplot"
	"github.com/njchilds90/symplot/internal/config"
	"github.com/njchilds90/symplot/internal/logging"
	"github.com/njchilds90/symplot/internal/metrics"
	"github.com/njchilds90/symplot/sample"
)

// Server wraps the HTTP router and its dependencies.
type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  *logging.Logger
	metrics *metrics.Metrics
	sampler sample.Sampler
	tools   map[string]bool
}

// New builds a server for cfg. A nil logger or metrics gets a no-op logger
// or a private registry.
func New(cfg *config.Config, logger *logging.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		config:  cfg,
		logger:  logger,
		metrics: m,
		sampler: cfg.Sampling.Sampler(),
		tools:   make(map[string]bool),
	}
	for _, name := range symplot.ToolNames() {
		s.tools[name] = true
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(RequestID())
	router.Use(Recovery(logger))
	router.Use(Logging(logger))
	if len(cfg.Server.AllowOrigins) > 0 {
		router.Use(CORS(cfg.Server.AllowOrigins))
	}
	if cfg.Server.RequestsPerSecond > 0 {
		router.Use(RateLimit(cfg.Server.RequestsPerSecond, cfg.Server.Burst))
	}
	router.Use(BodyLimit(cfg.Server.MaxBodyBytes))

	router.POST("/tool", s.handleTool)
	router.POST("/sample", s.handleSample)
	router.GET("/schema", s.handleSchema)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	s.router = router
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("symplot server listening",
			zap.String("addr", addr),
			zap.Int("tools", len(s.tools)),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

// decodeStrict decodes exactly one JSON value from the request body,
// rejecting unknown fields and trailing data.
func decodeStrict(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("invalid JSON: trailing data")
	}
	return nil
}

func (s *Server) handleTool(c *gin.Context) {
	var req symplot.ToolRequest
	if err := decodeStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	resp := symplot.HandleToolCall(req)
	label := req.Tool
	if !s.tools[label] {
		label = "unknown"
	}
	s.metrics.ObserveTool(label, resp.Error != "", time.Since(start))
	if resp.Error != "" {
		s.logger.Debug("tool call failed",
			zap.String("tool", req.Tool),
			zap.String("error", resp.Error),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
	// Tool failures are part of the response body, not the status code.
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", []byte(symplot.MCPToolSpec()))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
