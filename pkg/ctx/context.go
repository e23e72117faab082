// Package ctx gives handlers a single request/response value with helpers
// for binding, identity lookup and JSON replies.
//
//	router.Post("/api/orders", "orders.store", ctx.Wrap(func(c *ctx.Context) {
//	    var in OrderInput
//	    if !c.BindJSON(&in) {
//	        return // response already sent
//	    }
//	    c.OK(map[string]any{"orderId": id})
//	}))
package ctx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/shashiranjanraj/servicehub/pkg/bind"
	"github.com/shashiranjanraj/servicehub/pkg/logger"
	"github.com/shashiranjanraj/servicehub/pkg/response"
	"github.com/shashiranjanraj/servicehub/pkg/session"
	"github.com/shashiranjanraj/servicehub/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Query returns a query-string value, or "".
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log returns the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Identity returns the caller resolved by session.Middleware.
func (c *Context) Identity() (session.Identity, bool) {
	return session.FromCtx(c.R.Context())
}

// BindJSON decodes and validates the body into dest. On failure it writes a
// 400 response and returns false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.W, c.R, dest)
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

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// OK writes 200 {"ok":true} plus extra.
func (c *Context) OK(extra map[string]any) {
	response.OK(c.W, extra)
}

func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

func (c *Context) ValidationError(errs validate.Errors) {
	response.ValidationError(c.W, errs)
}

func (c *Context) Unauthorized() {
	response.Unauthorized(c.W)
}

// ServerError logs err with the request logger and writes a generic 500.
func (c *Context) ServerError(err error) {
	c.Log().Error("request failed", "error", err, "path", c.R.URL.Path)
	response.ServerError(c.W)
}

// Fail writes validation errors found in err as 400 and anything else as 500.
// Callers map their own sentinel errors before falling through to Fail.
func (c *Context) Fail(err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		c.ValidationError(verrs)
		return
	}
	c.ServerError(err)
}
