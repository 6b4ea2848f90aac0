package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"
)

var ErrPortsExhausted = errors.New("no free port")

type Server struct {
	http *http.Server
}

func New(h http.Handler, logger *slog.Logger) *Server {
	return &Server{http: &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}}
}

// Listen binds host:port. While the address is in use it moves on to the
// next port, trying at most attempts ports in total. Other bind errors are
// returned immediately.
func Listen(ctx context.Context, host string, port, attempts int, logger *slog.Logger) (net.Listener, error) {
	var lc net.ListenConfig
	for i := 0; i < attempts; i++ {
		p := port + i
		if p > 65535 {
			break
		}
		addr := net.JoinHostPort(host, strconv.Itoa(p))
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("listen %s: %w", addr, err)
		}
		logger.Warn("address in use, trying next port", "addr", addr)
	}
	return nil, fmt.Errorf("%w: ports %d-%d on %q are in use", ErrPortsExhausted, port, port+attempts-1, host)
}

func (s *Server) Start(ln net.Listener) error {
	return s.http.Serve(ln)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
