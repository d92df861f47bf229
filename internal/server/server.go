// Package server runs the HTTP and gRPC listeners side by side and shuts
// them down together.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	grpcserver "github.com/shashiranjanraj/storefront/pkg/grpc"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests get after ctx ends.
const ShutdownTimeout = 10 * time.Second

// Options configure Run. An empty GRPCAddr disables the gRPC listener.
type Options struct {
	Handler  http.Handler
	HTTPAddr string
	GRPCAddr string
	Health   grpcserver.Check
}

// Run serves until ctx is cancelled or a listener fails.
func Run(ctx context.Context, opts Options) error {
	httpLis, err := net.Listen("tcp", opts.HTTPAddr)
	if err != nil {
		return fmt.Errorf("server: listen http %s: %w", opts.HTTPAddr, err)
	}
	var grpcLis net.Listener
	if opts.GRPCAddr != "" && opts.GRPCAddr != ":" {
		grpcLis, err = net.Listen("tcp", opts.GRPCAddr)
		if err != nil {
			httpLis.Close()
			return fmt.Errorf("server: listen grpc %s: %w", opts.GRPCAddr, err)
		}
	}
	return serve(ctx, opts, httpLis, grpcLis)
}

func serve(ctx context.Context, opts Options, httpLis, grpcLis net.Listener) error {
	srv := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", httpLis.Addr().String())
		if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: http: %w", err)
		}
		return nil
	})

	if grpcLis != nil {
		gs := grpcserver.New(opts.Health)
		g.Go(func() error {
			slog.Info("gRPC server listening", "addr", grpcLis.Addr().String())
			return gs.Serve(grpcLis)
		})
		g.Go(func() error {
			<-gctx.Done()
			grpcserver.Stop(gs)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
