// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package server runs the HTTP listener: response compression, timeouts
// and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/czujnik/czujnik/internal/config"
	"github.com/czujnik/czujnik/internal/logging"
	"github.com/klauspost/compress/gzhttp"
)

// Server wraps an http.Server with its shutdown policy.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	log             *clog.Logger
}

// Compress wraps h so responses of at least minSize bytes are gzipped for
// clients that accept it. A non-positive minSize uses the library default.
func Compress(h http.Handler, minSize int) (http.Handler, error) {
	wrap, err := gzhttp.NewWrapper()
	if minSize > 0 {
		wrap, err = gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	}
	if err != nil {
		return nil, fmt.Errorf("gzip wrapper: %w", err)
	}
	return wrap(h), nil
}

// New builds a Server for h from the server section of c.
func New(c config.Server, addr string, h http.Handler, l *clog.Logger) (*Server, error) {
	if l == nil {
		l = logging.L
	}
	wrapped, err := Compress(h, c.GzipMinSize)
	if err != nil {
		return nil, err
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           wrapped,
			ReadTimeout:       c.ReadTimeout,
			ReadHeaderTimeout: c.ReadTimeout,
			WriteTimeout:      c.WriteTimeout,
			IdleTimeout:       c.IdleTimeout,
		},
		shutdownTimeout: c.ShutdownTimeout,
		log:             l,
	}, nil
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests for up to the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", ln.Addr().String())
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down", "timeout", s.shutdownTimeout)
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
