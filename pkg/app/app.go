// Package app builds the storefront HTTP kernel and runs the servers.
//
//	a := app.New().
//	    Routes(storefront.Routes).
//	    Files("/storage", disk.FileServer()).
//	    Health(database.Ping)
//
//	err := a.Serve(ctx, app.ServeOptions{HTTPPort: "8080", GRPCPort: "9090"})
package app

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Application collects what the kernel needs: route registrations, static
// file mounts and health checks.
type Application struct {
	routesFns []func(*router.Router) error
	files     map[string]http.Handler
	health    HealthCheck
}

// New creates an empty Application.
func New() *Application {
	return &Application{files: map[string]http.Handler{}}
}

// Routes adds a route-registration callback. Callbacks run in order when
// the kernel is built.
func (a *Application) Routes(fn func(*router.Router) error) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Files serves h under prefix (e.g. local product images under /storage).
func (a *Application) Files(prefix string, h http.Handler) *Application {
	if h != nil {
		a.files[prefix] = h
	}
	return a
}

// Health sets the check behind GET /health and the gRPC health service.
func (a *Application) Health(check HealthCheck) *Application {
	a.health = check
	return a
}

// RouteTable builds the router and returns every registered route.
func (a *Application) RouteTable() ([]router.Route, error) {
	r, err := a.build()
	if err != nil {
		return nil, err
	}
	return r.Routes(), nil
}

// Handler builds the HTTP handler.
func (a *Application) Handler() (http.Handler, error) {
	r, err := a.build()
	if err != nil {
		return nil, err
	}
	return r.Handler(), nil
}

// ServeOptions are the listen ports.
type ServeOptions struct {
	HTTPPort string
	GRPCPort string
}

// Serve runs the HTTP and gRPC servers until ctx is cancelled, then shuts
// both down gracefully.
func (a *Application) Serve(ctx context.Context, opts ServeOptions) error {
	h, err := a.Handler()
	if err != nil {
		return err
	}
	return server.Run(ctx, server.Options{
		Handler:  h,
		HTTPAddr: ":" + opts.HTTPPort,
		GRPCAddr: ":" + opts.GRPCPort,
		Health:   a.check,
	})
}

func (a *Application) check(ctx context.Context) error {
	if a.health == nil {
		return nil
	}
	return a.health(ctx)
}
