// Package server serves the elecciones web site: the home page with the
// democratic timeline, the charts page, the contact page, a small JSON API
// and chart images rendered through the pipeline.
//
// Routes:
//
//	GET /                                     home
//	GET /datos?tipo=&grafico=&anio=           charts page
//	GET /contacto                             contact page
//	GET /api/years                            years per election type
//	GET /api/{type}/{year}                    one election result
//	GET /api/legislativo/{year}/hemicycle     seat layout
//	GET /charts/{type}/{year}/{chart}.{ext}   chart image (svg, png, json)
//	GET /health                               liveness and build info
//	GET /metrics                              Prometheus metrics
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/elecciones/internal/config"
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/observability"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// Server is the web site. It is safe for concurrent use.
type Server struct {
	cfg     config.ServerConfig
	runner  *pipeline.Runner
	data    *election.Dataset
	logger  *log.Logger
	metrics *observability.Prometheus
	pages   *pages
	router  chi.Router
}

// New builds the site over runner. When cfg.Metrics is set, a Prometheus
// registry is installed as the process-wide observability hooks and
// exposed on /metrics.
func New(cfg config.ServerConfig, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		runner: runner,
		data:   runner.Data,
		logger: logger,
		pages:  p,
	}
	if cfg.Metrics {
		s.metrics = observability.NewPrometheus()
		observability.SetPipelineHooks(s.metrics)
		observability.SetCacheHooks(s.metrics)
		observability.SetHTTPHooks(s.metrics)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the site's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on cfg.Listen until ctx is cancelled, then shuts
// down gracefully within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
