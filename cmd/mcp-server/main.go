// cmd/mcp-server/main.go: Standalone HTTP MCP server for symplot
//
// Exposes the symplot tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server -port 8080 -config symplot.yaml
//
// Tool call endpoint: POST /tool
// Sampling endpoint:  POST /sample
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/njchilds90/symplot/internal/config"
	"github.com/njchilds90/symplot/internal/logging"
	"github.com/njchilds90/symplot/internal/metrics"
	"github.com/njchilds90/symplot/internal/server"
)

func main() {
	port := flag.Int("port", 0, "Port to listen on (overrides the config)")
	cfgFile := flag.String("config", "", "Config file (YAML)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, logger, metrics.New()).Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		stop()
		os.Exit(1)
	}
}
