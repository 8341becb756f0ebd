// Package server exposes bot status, statistics and a manual run trigger over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/devtips/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/stats.go -pkg mocks -skip-ensure -fmt goimports . Stats

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	scheduler Scheduler
	stats     Stats
	version   string
	debug     bool

	minSamples int            // samples a variant needs to lead an experiment
	location   *time.Location // zone of daily counters

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Scheduler runs posting cycles on demand
type Scheduler interface {
	RunNow(ctx context.Context) (domain.Outcome, error)
	LastOutcome() (domain.Outcome, bool)
	Busy() bool
}

// Stats provides stored statistics
type Stats interface {
	History(ctx context.Context) domain.History
	Analytics(ctx context.Context) domain.Analytics
	Experiments(ctx context.Context) domain.ExperimentState
	Ping(ctx context.Context) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetReportConfig() (minSamples int, location *time.Location)
}

// New initializes a new server instance
func New(cfg ConfigProvider, scheduler Scheduler, stats Stats, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		scheduler: scheduler,
		stats:     stats,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}
	s.minSamples, s.location = cfg.GetReportConfig()
	if s.location == nil {
		s.location = time.Local
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("devtips", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /history", s.historyHandler)
		r.HandleFunc("GET /analytics", s.analyticsHandler)
		r.HandleFunc("GET /experiments", s.experimentsHandler)
		r.HandleFunc("POST /run", s.runHandler)
		r.HandleFunc("/run", methodNotAllowed(http.MethodPost)) // other methods, root catch-all would give 404
	})

	s.router.Handle("GET /metrics", promhttp.Handler())
}

// methodNotAllowed responds 405 with the allowed methods listed
func methodNotAllowed(allowed ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		renderError(w, r, fmt.Errorf("method %s not allowed", r.Method), http.StatusMethodNotAllowed)
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
