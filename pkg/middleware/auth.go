// Package middleware provides the HTTP middleware mounted by the kernel.
package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/servicehub/pkg/response"
	"github.com/shashiranjanraj/servicehub/pkg/session"
)

// RequireIdentity rejects requests without a resolved session with 401.
// session.Middleware must run earlier in the chain.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromCtx(r.Context()); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
