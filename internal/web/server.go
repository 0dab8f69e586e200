// Package web exposes the deletion engine over HTTP. Handlers translate
// service results into JSON responses; authentication is out of scope, the
// acting user arrives pre-resolved in the X-Actor-ID header.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/coursebin/internal/service"
)

// Server is the HTTP server for the deletion engine API.
type Server struct {
	safeDelete service.SafeDeleteService
	recycleBin service.RecycleBinService
	router     *chi.Mux
	server     *http.Server
}

// NewServer creates a new Server instance.
func NewServer(safeDelete service.SafeDeleteService, recycleBin service.RecycleBinService) *Server {
	s := &Server{
		safeDelete: safeDelete,
		recycleBin: recycleBin,
		router:     chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/recycle-bin", s.handleRecycleBin)

		r.Route("/{entityType}/{entityID}", func(r chi.Router) {
			r.Post("/validate", s.handleValidate)
			r.Post("/delete", s.handleDelete)
			r.Post("/restore", s.handleRestore)
		})
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening on the given address and blocks until shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
