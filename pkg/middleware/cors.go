package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
)

type CORSOptions struct {
	AllowedOrigins []string // "*" allows any origin
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int // preflight cache, seconds
}

// DefaultCORSOptions allows the storefront front-end origins from
// CORS_ALLOWED_ORIGINS (comma separated, default "*") to call the API with a
// bearer token.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins: config.CORSAllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", reqid.Header},
		ExposedHeaders: []string{reqid.Header},
		MaxAge:         600,
	}
}

func (o CORSOptions) allow(origin string) string {
	if slices.Contains(o.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(o.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

// CORS answers preflight requests and decorates responses for allowed
// origins. Requests from other origins pass through undecorated.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")
	exposed := strings.Join(opts.ExposedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			if allowed := opts.allow(r.Header.Get("Origin")); allowed != "" {
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if exposed != "" {
					h.Set("Access-Control-Expose-Headers", exposed)
				}
				if opts.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
