package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dealbridge/dealbridge/internal/config"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
)

// Server wraps the standard http.Server with lifecycle management.
type Server struct {
	srv *http.Server
	log logging.Logger

	shutdownTimeout time.Duration
}

// NewServer builds the HTTP server around the given handler.
func NewServer(cfg config.ServerConfig, handler http.Handler, log logging.Logger) *Server {
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		log:             log,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler returns the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until the listener fails or Stop is called.  It blocks.
func (s *Server) Start() error {
	s.log.Info("http server starting", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests, waiting at most the configured shutdown
// timeout before closing forcefully.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.log.Info("http server stopping")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Warn("graceful shutdown failed, closing", logging.Err(err))
		return s.srv.Close()
	}
	return nil
}
