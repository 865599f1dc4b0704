package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
)

// ErrAlreadyRunning is returned when Run is called on a Server that is
// already serving.
var ErrAlreadyRunning = errors.New("http server already running")

// Server runs an http.Server with context-driven graceful shutdown. Signal
// handling belongs to the caller; cancelling the context passed to Run
// drains in-flight requests and stops the server.
type Server struct {
	cfg     config
	running atomic.Bool
}

// New returns a Server configured by the given options.
func New(opts ...Option) *Server {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.New(slog.DiscardHandler)
	}
	return &Server{cfg: cfg}
}

// Run listens on the configured address and serves handler until ctx is
// cancelled or the listener fails. On cancellation it waits up to the
// shutdown timeout for in-flight requests before returning.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.addr, err)
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	s.cfg.log.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	// Serve returns http.ErrServerClosed once Shutdown completes.
	<-serveErr

	s.cfg.log.Info("http server stopped")
	return nil
}
