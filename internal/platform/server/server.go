// Package server runs an HTTP handler until its context is cancelled, then
// drains in-flight requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type Server struct {
	srv    *http.Server
	grace  time.Duration
	logger *slog.Logger
}

// New builds a server listening on port. grace bounds how long Shutdown
// waits for outstanding requests.
func New(port int, handler http.Handler, grace time.Duration, logger *slog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 3 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		grace:  grace,
		logger: logger,
	}
}

// Run listens on the configured address. See Serve.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve blocks until ctx is done or the listener fails. A cancelled ctx is
// a clean stop and returns nil once the server has drained.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- s.srv.Serve(ln)
	}()

	s.logger.Info("http server listening", "addr", ln.Addr().String())

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown requested", "cause", context.Cause(ctx))
		return s.Shutdown()
	}
}

// Shutdown gives outstanding requests the grace period, then closes any
// connections left.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("graceful server shutdown failed", "err", err)
		if err := s.srv.Close(); err != nil {
			s.logger.Error("error closing server", "err", err)
		}
		return err
	}
	return nil
}
