package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dimitrije/inventory-api/internal/logging"
)

type Server struct {
	http   *http.Server
	logger logging.Logger
}

func New(addr string, handler http.Handler, logger logging.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "server shutting down")
	return s.http.Shutdown(ctx)
}
