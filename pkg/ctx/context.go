// Package ctx provides a request context for storefront handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for params, binding and the
// response envelope:
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUint("id")
//	    ...
//	    c.Success(product)
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W     http.ResponseWriter
	R     *http.Request
	mu    sync.RWMutex
	store map[string]any
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a positive integer path parameter.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// QueryInt returns an integer query value, or def when absent or malformed.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return def
	}
	return n
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Identity returns the caller decoded by middleware.Auth.
func (c *Context) Identity() (auth.Identity, bool) {
	return auth.FromContext(c.R.Context())
}

// ─── Per-request store ────────────────────────────────────────────────────────

// Set stores a value in the per-request key-value store.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

// Get retrieves a value from the per-request store.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it sends a 422 and returns false; on a decode error
// it sends a 400 and returns false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// Validate runs validation rules on an already-populated struct and sends a
// 422 when they fail.
func (c *Context) Validate(v any) bool {
	errs := bind.Validate(v)
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ParseMultipart reads a multipart/form-data body, capped like JSON bodies.
// Sends a 400 and returns false when the body cannot be parsed.
func (c *Context) ParseMultipart() bool {
	limit := bind.MaxBodyBytes()
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, limit)
	if err := c.R.ParseMultipartForm(limit); err != nil {
		c.Error(http.StatusBadRequest, fmt.Sprintf("invalid form: %v", err))
		return false
	}
	return true
}

// FormValue returns a trimmed form field.
func (c *Context) FormValue(key string) string {
	return strings.TrimSpace(c.R.FormValue(key))
}

// FormFile reads an uploaded file. It returns http.ErrMissingFile when the
// field is absent.
func (c *Context) FormFile(key string) (content []byte, filename string, err error) {
	f, header, err := c.R.FormFile(key)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	content, err = io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read upload %q: %w", key, err)
	}
	return content, header.Filename, nil
}

// HasFile reports whether the multipart form carries a file under key.
func (c *Context) HasFile(key string) bool {
	f, _, err := c.R.FormFile(key)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// Success sends a 200 envelope.
func (c *Context) Success(data any) { response.Success(c.W, data) }

// Created sends a 201 envelope.
func (c *Context) Created(data any) { response.Created(c.W, data) }

// Paginated sends a 200 envelope carrying items and pagination metadata.
func (c *Context) Paginated(items any, p orm.Pagination) { response.Paginated(c.W, items, p) }

// Error sends an error envelope with the given status and message.
func (c *Context) Error(code int, message string) { response.Error(c.W, code, message) }

// ValidationError sends a 422 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) { response.ValidationError(c.W, errs) }

// Unauthorized sends a 401.
func (c *Context) Unauthorized(message ...string) {
	if len(message) > 0 {
		c.Error(http.StatusUnauthorized, message[0])
		return
	}
	response.Unauthorized(c.W)
}

// NotFound sends a 404.
func (c *Context) NotFound(message ...string) {
	if len(message) > 0 {
		c.Error(http.StatusNotFound, message[0])
		return
	}
	response.NotFound(c.W)
}

// ServerError logs err with the request logger and sends a generic 500.
func (c *Context) ServerError(err error) {
	c.Logger().Error("request failed", "method", c.R.Method, "path", c.R.URL.Path, "error", err)
	response.ServerError(c.W)
}
