// Package server runs the HTTP listener and, alongside it, the gRPC health
// server, and shuts both down when the context ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	grpcserver "github.com/thedosaspot/dosaspot/pkg/grpc"
	"github.com/thedosaspot/dosaspot/pkg/logger"
)

// Options configures Run.
type Options struct {
	Addr string // HTTP listen address, e.g. ":8000"
	// GRPCPort is the gRPC health port; empty disables it.
	GRPCPort string
	// Check backs the gRPC health status.
	Check           grpcserver.Checker
	ShutdownTimeout time.Duration
}

// Run listens on opts.Addr and serves handler until ctx is cancelled.
func Run(ctx context.Context, handler http.Handler, opts Options) error {
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", opts.Addr, err)
	}
	return Serve(ctx, ln, handler, opts)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, opts Options) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	var grpcSrv *grpcserver.Server
	if opts.GRPCPort != "" {
		g, err := grpcserver.Start(opts.GRPCPort, opts.Check)
		if err != nil {
			ln.Close()
			return err
		}
		grpcSrv = g
	}
	defer grpcSrv.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger.Info("shutting down", "timeout", timeout.String())

	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
