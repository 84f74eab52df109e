// Package server implements the graphstat HTTP API.
//
// The API accepts raw edge lists as request bodies and answers with the same
// statistics the CLI prints, computed through a shared [pipeline.Runner] so
// that both entry points hit the same cache.
//
// # Routes
//
//	GET  /healthz        liveness check
//	GET  /version        build information
//	GET  /metrics        Prometheus exposition
//	POST /v1/stats       edge list in, stats JSON out
//	POST /v1/distances   edge list in, single-origin distances out
//	POST /v1/render      edge list in, DOT or SVG out
//
// Query parameters select the load and analysis options:
//
//	format=csv|tab|json  capacity=N  directed=bool  limit=N
//	method=strip|bfs|priority  no_cache=bool  refresh=bool
//
// Every response carries an X-Request-ID header. A client supplied value is
// echoed back; otherwise a random UUID is generated.
//
// # Errors
//
// Failures are reported as {"code": ..., "message": ...} with the status
// derived from the error code: INVALID_* maps to 400, *_NOT_FOUND to 404,
// an oversized body to 413 and everything else to 500.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphstat/pkg/observability"
	"github.com/matzehuels/graphstat/pkg/pipeline"
)

const (
	// DefaultMaxBodyBytes caps request bodies when Options leaves it unset.
	DefaultMaxBodyBytes = 64 << 20

	// DefaultNodeLimit caps the graphs built from request bodies when
	// Defaults.NodeLimit is unset. Requests cannot raise it.
	DefaultNodeLimit = 1 << 22

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address for ListenAndServe.
	Addr string

	// MaxBodyBytes limits the size of an uploaded edge list.
	MaxBodyBytes int64

	// Defaults seeds the pipeline options of every request. Query
	// parameters override the load and method fields, but not NodeLimit.
	Defaults pipeline.Options

	// Registry receives the Prometheus collectors. A fresh registry is
	// created when nil.
	Registry *prometheus.Registry

	Logger *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	opts     Options
	logger   *log.Logger
	registry *prometheus.Registry
	router   chi.Router
}

// New builds a server around runner and registers its metrics as the
// process-wide observability hooks.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Defaults.NodeLimit <= 0 {
		opts.Defaults.NodeLimit = DefaultNodeLimit
	}
	if opts.Logger == nil {
		opts.Logger = runner.Logger
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
		opts.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := observability.NewMetrics(opts.Registry)
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)

	s := &Server{
		runner:   runner,
		opts:     opts,
		logger:   opts.Logger,
		registry: opts.Registry,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/stats", s.handleStats)
		r.Post("/distances", s.handleDistances)
		r.Post("/render", s.handleRender)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on Options.Addr until ctx is cancelled, then shuts
// down gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
