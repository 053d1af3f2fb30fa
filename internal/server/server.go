package server

import (
	"context"
	"log"
	"net/http"

	"github.com/hireachef/backend/config"
	"github.com/hireachef/backend/internal/api"
	"github.com/hireachef/backend/internal/router"
)

// Server wraps the HTTP server around the assembled router.
type Server struct {
	http *http.Server
}

// New builds the server from the shared dependencies.
func New(cfg *config.Config, deps api.Dependencies) *Server {
	engine := router.New(deps)
	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start blocks serving HTTP until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	log.Printf("[server] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
