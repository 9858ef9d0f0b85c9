// Package server exposes the layout and relationship pipeline over HTTP.
//
// The API is JSON in, JSON out. Stateless endpoints (POST /v1/layout,
// POST /v1/relationship) operate on a snapshot posted in the request body;
// the /v1/trees endpoints persist snapshots, computed layouts, and collapse
// state through a [store.Store].
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kinview/pkg/observability"
	"github.com/matzehuels/kinview/pkg/pipeline"
	"github.com/matzehuels/kinview/pkg/store"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store disables the /v1/trees endpoints with
// 503 responses; a nil logger falls back to the runner's logger.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/v1/health", s.handleHealth)
	r.Post("/v1/layout", s.handleLayout)
	r.Post("/v1/relationship", s.handleRelationship)

	r.Route("/v1/trees", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.handleListTrees)
		r.Route("/{treeID}", func(r chi.Router) {
			r.Get("/", s.handleGetTree)
			r.Put("/", s.handlePutTree)
			r.Delete("/", s.handleDeleteTree)
			r.Post("/layout", s.handleTreeLayout)
			r.Get("/collapse", s.handleGetCollapse)
			r.Put("/collapse", s.handlePutCollapse)
		})
	})

	return r
}

// logRequests captures the response status and emits the request both to the
// logger and to the registered server hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}

// requireStore rejects persistence endpoints when no store is configured.
func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "no store configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}
