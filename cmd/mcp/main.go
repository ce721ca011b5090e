package main

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/doclens/internal/adapters/mcp"
	"github.com/kirillkom/doclens/internal/bootstrap"
	"github.com/kirillkom/doclens/internal/config"
	"github.com/kirillkom/doclens/internal/observability/logging"
)

const serviceName = "mcp"

func main() {
	cfg := config.Load()
	// stdout carries the protocol.
	logger := logging.NewJSONLoggerTo(os.Stderr, serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	pipeline, err := bootstrap.NewPipeline(cfg, bootstrap.Options{Service: serviceName, Logger: logger})
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	srv := mcpadapter.New(pipeline.Translator, pipeline.Analyzer, pipeline.Languages, logger).MCPServer()
	logger.Info("mcp_serving_stdio", "provider", cfg.TranslatorProvider)
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
