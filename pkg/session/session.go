// Package session turns the auth_token cookie into an optional Identity.
//
// Resolution fails open: a missing, malformed or expired token yields "no
// identity" rather than an error, and protected routes decide what to do
// with an anonymous caller.
//
//	r.Use(session.Middleware(resolver))
//	id, ok := session.FromCtx(r.Context())
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/servicehub/pkg/auth"
	"github.com/shashiranjanraj/servicehub/pkg/logger"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth_token"

// Identity is the authenticated subject recovered from a verified token.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// Verifier checks a token and returns its claims.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Resolver extracts the identity from an inbound request.
type Resolver struct {
	verifier Verifier
}

func NewResolver(v Verifier) *Resolver {
	return &Resolver{verifier: v}
}

// Resolve returns the caller identity, or false when the request carries no
// valid session.
func (r *Resolver) Resolve(req *http.Request) (Identity, bool) {
	cookie, err := req.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Identity{}, false
	}

	claims, err := r.verifier.Verify(cookie.Value)
	if err != nil {
		logger.WithCtx(req.Context()).Debug("session token rejected", "error", err)
		return Identity{}, false
	}

	return Identity{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, true
}

// ── Cookie writer ────────────────────────────────────────────────────────────

// Cookies writes and clears the session cookie.
type Cookies struct {
	MaxAge time.Duration
	Secure bool
}

// DefaultCookies mirrors the token lifetime and always sets Secure.
func DefaultCookies() Cookies {
	return Cookies{MaxAge: auth.DefaultTokenTTL, Secure: true}
}

// Set stores token in an HTTP-only, SameSite=Lax cookie.
func (c Cookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, int(c.MaxAge.Seconds())))
}

// Clear expires the cookie in the browser. Any copy of the token held
// elsewhere stays valid until its own expiry.
func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c Cookies) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ── Middleware ───────────────────────────────────────────────────────────────

type ctxKey struct{}

// Middleware resolves the session once per request and stores the result in
// the request context. It never rejects a request.
func Middleware(r *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if id, ok := r.Resolve(req); ok {
				req = req.WithContext(WithIdentity(req.Context(), id))
			}
			next.ServeHTTP(w, req)
		})
	}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the identity stored by Middleware, if any.
func FromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
