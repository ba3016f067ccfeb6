package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"go-grafik/internal/config"

	"go.uber.org/zap"
)

// StartHTTPServer listens on port and serves until SIGINT or SIGTERM.
func StartHTTPServer(handler http.Handler, port string, cfg config.ServerConfig, auditLogger AuditLogger, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", port, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, ln, handler, cfg, auditLogger, logger)
}

// Serve runs the API on ln until ctx ends, then drains in-flight requests
// for at most cfg.ShutdownTimeout. A serve failure is returned as is.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg config.ServerConfig, auditLogger AuditLogger, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.Named("http")

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server running", zap.String("addr", ln.Addr().String()))
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown requested", zap.Error(context.Cause(ctx)))
	auditLogger.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "API server is draining requests",
		Meta: map[string]any{
			"addr":    ln.Addr().String(),
			"timeout": cfg.ShutdownTimeout.String(),
		},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
