package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// GracefulServer wraps an echo server with signal-driven graceful shutdown
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	port            int
	shutdownTimeout time.Duration
	components      *ShutdownManager
}

// NewGracefulServer creates a new server. Components registered on the
// returned server's ShutdownManager are stopped after the HTTP listener.
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, port int) *GracefulServer {
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		port:            port,
		shutdownTimeout: defaultShutdownTimeout,
		components:      NewShutdownManager(zapLogger),
	}
}

// WithShutdownTimeout overrides the drain deadline
func (s *GracefulServer) WithShutdownTimeout(d time.Duration) *GracefulServer {
	if d > 0 {
		s.shutdownTimeout = d
	}
	return s
}

// Components exposes the shutdown manager for cleanup registration
func (s *GracefulServer) Components() *ShutdownManager {
	return s.components
}

// Start serves until SIGINT or SIGTERM, then shuts down
func (s *GracefulServer) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		s.logger.Info("Starting HTTP server", logger.String("address", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			s.logger.Error("HTTP server failed", logger.Err(err))
			_ = s.components.Shutdown(context.Background())
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	}

	return s.Shutdown()
}

// Shutdown stops accepting requests, drains in-flight ones, then stops components
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.echo.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
	}

	if cerr := s.components.Shutdown(ctx); cerr != nil && err == nil {
		err = cerr
	}

	s.logger.Info("Server shutdown completed")
	return err
}

// ShutdownManager runs registered cleanup functions in registration order
type ShutdownManager struct {
	logger    *logger.ZapLogger
	names     []string
	functions []func(context.Context) error
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a named cleanup function
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.names = append(sm.names, name)
	sm.functions = append(sm.functions, fn)
}

// Shutdown executes all registered cleanup functions. Every function runs
// even if an earlier one fails; the first error is returned.
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.logger.Info("Starting graceful shutdown of components", logger.Int("components", len(sm.functions)))

	var firstErr error
	for i, fn := range sm.functions {
		if err := fn(ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.String("component", sm.names[i]),
				logger.Err(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", sm.names[i], err)
			}
		}
	}

	sm.logger.Info("All components shutdown completed")
	return firstErr
}
