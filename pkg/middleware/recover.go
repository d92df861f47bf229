package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Recovery logs a handler panic with its stack and answers 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			metrics.PanicsRecovered.Inc()
			logger.WithCtx(r.Context()).Error("panic recovered",
				"panic", rec,
				"route", r.Method+" "+r.URL.Path,
				"stack", string(debug.Stack()),
			)
			response.ServerError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
