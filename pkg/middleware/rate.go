// Package middleware provides the HTTP middleware stack of the storefront.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/response"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterSet struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	window  time.Duration
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if c, ok := s.clients[key]; ok {
		c.lastSeen = now
		return c.limiter
	}

	if len(s.clients) >= maxTrackedClients {
		s.evict(now)
	}

	c := &client{limiter: rate.NewLimiter(s.limit, s.burst), lastSeen: now}
	s.clients[key] = c
	return c.limiter
}

// evict drops clients idle for longer than one window. Caller holds mu.
func (s *limiterSet) evict(now time.Time) {
	for key, c := range s.clients {
		if now.Sub(c.lastSeen) > s.window {
			delete(s.clients, key)
		}
	}
}

// RateLimit returns a middleware that allows each client IP max requests per
// window, refilled continuously.
// Example: middleware.RateLimit(100, time.Minute)
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	set := &limiterSet{
		clients: make(map[string]*client),
		limit:   rate.Every(window / time.Duration(max)),
		burst:   max,
		window:  window,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.get(clientIP(r)).Allow() {
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
