package health

import (
	"context"
	"errors"
	"net/http"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/logger"
)

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// Checker probes one dependency
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a ping function to Checker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// Connected adapts a connection-state probe, such as a NATS client's
func Connected(isConnected func() bool) CheckerFunc {
	return func(context.Context) error {
		if !isConnected() {
			return errors.New("not connected")
		}
		return nil
	}
}

// DependencyInfo represents health info for a dependency
type DependencyInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the readiness response body
type Report struct {
	Status       string                    `json:"status"`
	Service      string                    `json:"service"`
	Version      string                    `json:"version,omitempty"`
	Timestamp    time.Time                 `json:"timestamp"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

// Service aggregates dependency checkers
type Service struct {
	name     string
	version  string
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewService creates a health service for the named process
func NewService(name, version string) *Service {
	return &Service{name: name, version: version, checkers: make(map[string]Checker)}
}

// AddChecker registers a checker for a dependency. A nil checker is ignored.
func (s *Service) AddChecker(name string, checker Checker) {
	if checker == nil {
		return
	}
	s.mu.Lock()
	s.checkers[name] = checker
	s.mu.Unlock()
}

// Check runs every checker and reports "healthy" only if all pass
func (s *Service) Check(ctx context.Context) Report {
	s.mu.RLock()
	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)

	report := Report{
		Status:       "healthy",
		Service:      s.name,
		Version:      s.version,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyInfo, len(names)),
	}

	for _, name := range names {
		s.mu.RLock()
		checker := s.checkers[name]
		s.mu.RUnlock()

		if err := checker.CheckHealth(ctx); err != nil {
			logger.Warn("Health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			report.Dependencies[name] = DependencyInfo{Status: "unhealthy", Error: err.Error()}
			report.Status = "unhealthy"
			continue
		}
		report.Dependencies[name] = DependencyInfo{Status: "healthy"}
	}

	return report
}

// NewPingHandler reports build information
func NewPingHandler(serviceName, version string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := BuildInfo{
		Version:     version,
		GitCommit:   "unknown",
		ServiceName: serviceName,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
	}
	if gitCommit := os.Getenv("GIT_COMMIT"); gitCommit != "" {
		info.GitCommit = gitCommit
	}

	return func(c echo.Context) error {
		resp := info
		resp.ServerTime = time.Now()
		return c.JSON(http.StatusOK, resp)
	}
}

// RegisterHealthEndpoints registers ping, liveness and readiness endpoints
func RegisterHealthEndpoints(e *echo.Echo, svc *Service) {
	e.GET("/ping", NewPingHandler(svc.name, svc.version))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "alive", "service": svc.name})
	})

	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		report := svc.Check(ctx)
		if report.Status != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, report)
		}
		return c.JSON(http.StatusOK, report)
	})
}
