package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// build constructs the router with the global middleware stack, the
// framework endpoints and the registered routes.
func (a *Application) build() (*router.Router, error) {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics: outermost for accurate total latency
	//  2. Recovery: catches panics before they kill the goroutine
	//  3. Request ID: inject unique ID before anything logs
	//  4. Logger: logs request_id from context
	//  5. CORS
	//  6. Rate limiter: reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.Handle("/metrics", metrics.Handler())
	r.Get("/health", "health", a.healthHandler)

	for prefix, h := range a.files {
		prefix = "/" + strings.Trim(prefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, h))
	}

	for _, fn := range a.routesFns {
		if err := fn(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (a *Application) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.check(ctx); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "unhealthy")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}
