package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/servicehub/pkg/auth"
	"github.com/shashiranjanraj/servicehub/pkg/session"
)

func tokens(t *testing.T, now time.Time) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService("session-secret", 0)
	require.NoError(t, err)
	return svc.WithClock(func() time.Time { return now })
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	return req
}

func TestResolveWithoutCookie(t *testing.T) {
	r := session.NewResolver(tokens(t, time.Now()))

	_, ok := r.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestResolveValidToken(t *testing.T) {
	svc := tokens(t, time.Now())
	token, err := svc.Issue("u1", "anu@x.com", "Anu K")
	require.NoError(t, err)

	id, ok := session.NewResolver(svc).Resolve(requestWithCookie(token))
	require.True(t, ok)
	assert.Equal(t, session.Identity{ID: "u1", Email: "anu@x.com", Name: "Anu K"}, id)
}

func TestResolveFailsOpenOnBadToken(t *testing.T) {
	r := session.NewResolver(tokens(t, time.Now()))

	_, ok := r.Resolve(requestWithCookie("garbage"))
	assert.False(t, ok)
}

func TestResolveAfterExpiry(t *testing.T) {
	issued := time.Now()
	token, err := tokens(t, issued).Issue("u1", "anu@x.com", "")
	require.NoError(t, err)

	within := session.NewResolver(tokens(t, issued.Add(6*24*time.Hour)))
	_, ok := within.Resolve(requestWithCookie(token))
	assert.True(t, ok)

	after := session.NewResolver(tokens(t, issued.Add(8*24*time.Hour)))
	_, ok = after.Resolve(requestWithCookie(token))
	assert.False(t, ok)
}

func TestCookiesSetAndClear(t *testing.T) {
	c := session.DefaultCookies()

	rec := httptest.NewRecorder()
	c.Set(rec, "tok")
	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, session.CookieName, set[0].Name)
	assert.Equal(t, "tok", set[0].Value)
	assert.Equal(t, 7*24*60*60, set[0].MaxAge)
	assert.True(t, set[0].HttpOnly)
	assert.True(t, set[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)
	assert.Equal(t, "/", set[0].Path)

	rec = httptest.NewRecorder()
	c.Clear(rec)
	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, session.CookieName+"=;")
	assert.Contains(t, header, "Max-Age=0")
}

func TestMiddlewareStoresIdentity(t *testing.T) {
	svc := tokens(t, time.Now())
	token, err := svc.Issue("u1", "anu@x.com", "")
	require.NoError(t, err)

	var got session.Identity
	var found bool
	h := session.Middleware(session.NewResolver(svc))(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, found = session.FromCtx(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), requestWithCookie(token))
	assert.True(t, found)
	assert.Equal(t, "u1", got.ID)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, found)
}
