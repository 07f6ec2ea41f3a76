// Package server implements the constellation HTTP API.
//
// Routes:
//
//	GET  /api/health             liveness, version, uptime, cache backend
//	POST /api/layout             lay out a caller-supplied topic graph
//	GET  /api/constellation      fetch, lay out and return the layout JSON
//	GET  /api/constellation.svg  the same constellation rendered as SVG
//	GET  /metrics                Prometheus exposition
//
// All handlers share one [pipeline.Runner]. The physics preset can be
// swapped at runtime with [Server.SetPhysics]; requests already in flight
// keep the preset they started with.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/constellation/pkg/force"
	"github.com/matzehuels/constellation/pkg/observability"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

// maxBodyBytes caps POST /api/layout request bodies.
const maxBodyBytes = 4 << 20

// Options configures a Server.
type Options struct {
	// Runner executes the pipeline. Required.
	Runner *pipeline.Runner

	// Logger receives request logs. Defaults to a discard logger.
	Logger *log.Logger

	// Defaults are the layout and render options applied before query
	// parameters. Physics seeds the hot-reloadable preset.
	Defaults pipeline.Options

	// CacheBackend is reported by /api/health.
	CacheBackend string

	// AllowedOrigins configures CORS. Empty allows any origin.
	AllowedOrigins []string
}

// Server is the constellation HTTP API server.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	backend  string
	origins  []string

	physics  atomic.Pointer[force.Config]
	validate *validator.Validate

	registry *prometheus.Registry
	metrics  *observability.Metrics
	requests *prometheus.CounterVec

	router  chi.Router
	started time.Time
}

// New creates a Server. It panics if opts.Runner is nil.
func New(opts Options) *Server {
	if opts.Runner == nil {
		panic("server: nil runner")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	defaults := opts.Defaults
	defaults.SetLayoutDefaults()
	defaults.SetRenderDefaults()
	defaults.Logger = logger

	s := &Server{
		runner:   opts.Runner,
		logger:   logger,
		defaults: defaults,
		backend:  opts.CacheBackend,
		origins:  origins,
		validate: validator.New(),
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}
	physics := defaults.Physics
	s.physics.Store(&physics)

	s.metrics = observability.NewMetrics(s.registry)
	s.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "constellation_http_requests_total",
			Help: "API requests served, by route and status",
		},
		[]string{"route", "status"},
	)
	s.registry.MustRegister(s.requests, collectors.NewGoCollector())

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the Prometheus hook implementation backing /metrics.
// Register it with the observability package to record pipeline, cache
// and upstream events.
func (s *Server) Metrics() *observability.Metrics {
	return s.metrics
}

// SetPhysics replaces the physics preset used by subsequent requests.
func (s *Server) SetPhysics(cfg force.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.physics.Store(&cfg)
	s.logger.Info("physics updated",
		"repulsion", cfg.Repulsion,
		"attraction", cfg.Attraction,
		"gravity", cfg.Gravity,
		"iterations", cfg.Iterations)
	return nil
}

// Physics returns the current physics preset.
func (s *Server) Physics() force.Config {
	return *s.physics.Load()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, waiting at most shutdownTimeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/layout", s.handleLayout)
		r.Get("/constellation", s.handleConstellation)
		r.Get("/constellation.svg", s.handleConstellationSVG)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.router = r
}

// options returns a copy of the defaults carrying the current physics.
func (s *Server) options() pipeline.Options {
	opts := s.defaults
	opts.Formats = append([]string(nil), s.defaults.Formats...)
	opts.Physics = s.Physics()
	return opts
}
