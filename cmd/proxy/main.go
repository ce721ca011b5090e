package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/kirillkom/doclens/internal/adapters/http"
	"github.com/kirillkom/doclens/internal/adapters/proxy"
	"github.com/kirillkom/doclens/internal/bootstrap"
	"github.com/kirillkom/doclens/internal/config"
	"github.com/kirillkom/doclens/internal/observability/logging"
)

const serviceName = "proxy"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remote, err := bootstrap.NewProxyTranslator(cfg, bootstrap.Options{Service: serviceName, Logger: logger})
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	handler := proxy.NewHandler(remote, logger).Routes()
	server := &http.Server{
		Addr:         ":" + cfg.ProxyPort,
		Handler:      httpadapter.CORS(cfg.CORSAllowedOrigins, handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("proxy_listening", "addr", server.Addr, "provider", cfg.TranslatorProvider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("proxy_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("proxy_shutdown_failed", "error", err)
	}
}
