// Package server exposes the lewis pipeline over HTTP.
//
// Routes:
//
//	GET /                        browser front end
//	GET /api/solve               solve a formula, returns structures as JSON
//	GET /api/render/{format}     render one structure of a formula
//	GET /api/formulas            formulas held by the structure store
//	GET /api/structures/{formula} stored structures of one formula
//	GET /healthz                 build information
//	GET /metrics                 Prometheus metrics
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with a
// status derived from the error code.
package server

import (
	"context"
	"embed"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lewis/pkg/config"
	"github.com/matzehuels/lewis/pkg/pipeline"
	"github.com/matzehuels/lewis/pkg/store"
)

//go:embed static/index.html
var static embed.FS

// Options configures a Server.
type Options struct {
	Runner  *pipeline.Runner
	Store   store.Store // optional
	Config  config.Config
	Logger  *log.Logger
	Metrics *Metrics // optional
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	cfg     config.Config
	logger  *log.Logger
	metrics *Metrics
	handler http.Handler
}

// New builds a server and its router.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	s := &Server{
		runner:  opts.Runner,
		store:   opts.Store,
		cfg:     opts.Config,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(logRequests(s.logger))
	r.Use(observe)
	if d := s.cfg.Server.RequestTimeout.Duration; d > 0 {
		r.Use(chimiddleware.Timeout(d))
	}

	r.Get("/", s.index)
	r.Get("/healthz", s.health)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/solve", s.solve)
		r.Get("/render/{format}", s.render)
		r.Get("/formulas", s.formulas)
		r.Get("/structures/{formula}", s.structures)
	})

	return r
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
