package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/agent-tracker/internal/api"
	"github.com/ignite/agent-tracker/internal/config"
	"github.com/ignite/agent-tracker/internal/pkg/logger"
	"github.com/ignite/agent-tracker/internal/pkg/metrics"
	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/session"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	if err := run(); err != nil {
		logger.Error("server failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	logger.SetRedactPII(cfg.Log.Redact())

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		return fmt.Errorf("pre-flight check: %w", err)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}
	var m *metrics.Metrics
	if cfg.Metrics.IsEnabled() {
		m = metrics.New()
	}
	server := api.NewServer(cfg, session.NewStore(), renderer, m)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", server.Addr(),
			"max_upload_bytes", cfg.Upload.MaxBytes,
			"metrics", m != nil,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
