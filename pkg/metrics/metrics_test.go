package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/things/{id}", "201"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/things/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/things/43", nil))

	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/things/{id}", "201"))
	assert.Equal(t, before+2, after)
	assert.Equal(t, 0.0, testutil.ToFloat64(RequestInFlight))
}

func TestMiddlewareUnmatched(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "unmatched", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestCacheResult(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("test"))

	CacheResult("test", true)
	CacheResult("test", false)
	CacheResult("test", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(CacheHits.WithLabelValues("test")))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheMisses.WithLabelValues("test")))
}

func TestObserveStoreAndHandler(t *testing.T) {
	ObserveStore("orders", "find", time.Now())

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "servicehub_store_operation_duration_seconds")
}
