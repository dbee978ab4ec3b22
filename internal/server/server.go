// Package server implements the HTTP explorer: upload pathway datasets and
// render them as Mondrian maps, relation networks, statistics and canvas
// grids.
//
// # Routes
//
//	GET    /healthz
//	GET    /api/legend.svg
//	GET    /api/canvas.svg?ids=a,b&rows=1&cols=2
//	GET    /api/datasets
//	POST   /api/datasets                       multipart: dataset, relations, info, name
//	GET    /api/datasets/{id}
//	DELETE /api/datasets/{id}
//	GET    /api/datasets/{id}/map.{format}     svg, png, pdf, json, csv
//	GET    /api/datasets/{id}/network.{format} svg, png, pdf, dot
//	GET    /api/datasets/{id}/stats
//
// Map and network routes accept the render options as query parameters:
// style, title, show_ids, tooltips, maximize, scale (log or ratio),
// cell (cell size in pixels), max_relations, detailed and all.
//
// JSON responses are indented when the request carries ?pretty=true.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mondrian/pkg/config"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/store"
)

// cleanupInterval is how often expired uploads are purged.
const cleanupInterval = 10 * time.Minute

// Server serves the explorer API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	cfg    config.Config
	logger *log.Logger
}

// New creates a server. A nil store uses an in-memory store sized by
// cfg.Server.MaxDatasets.
func New(runner *pipeline.Runner, st store.Store, cfg config.Config, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore(cfg.Server.MaxDatasets)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, cfg: cfg, logger: logger}
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/legend.svg", s.handleLegend)
		r.Get("/canvas.svg", s.handleCanvas)

		r.Route("/datasets", func(r chi.Router) {
			r.Get("/", s.handleListDatasets)
			r.Post("/", s.handleUpload)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDataset)
				r.Delete("/", s.handleDeleteDataset)
				r.Get("/map.{format}", s.handleMap)
				r.Get("/network.{format}", s.handleNetwork)
				r.Get("/stats", s.handleStats)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorBody("METHOD_NOT_ALLOWED", "method "+r.Method+" not allowed"))
	})
	return r
}

// ListenAndServe serves on cfg.Server.Addr until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("explorer listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.store.Cleanup(ctx)
			if err != nil {
				s.logger.Warn("cleanup failed", "error", err)
			} else if n > 0 {
				s.logger.Debug("removed expired datasets", "count", n)
			}
		}
	}
}
