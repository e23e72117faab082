package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFrom_ReadsDotEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("SESSION_TTL", "")
	path := writeEnv(t, "JWT_SECRET=from-file\nMONGODB_URI=\"mongodb://db:27017/shop\"\n# comment\nSESSION_TTL=2h\n")
	require.NoError(t, LoadFrom(path))
	t.Cleanup(func() { _ = LoadFrom("testdata/missing.env") })

	assert.Equal(t, "from-file", JWTSecret())
	assert.Equal(t, "mongodb://db:27017/shop", MongoURI())
	assert.Equal(t, 2*time.Hour, SessionTTL())
}

func TestLoadFrom_MissingFileKeepsDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "SESSION_TTL", "ORDERS_CACHE_TTL", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}
	require.NoError(t, LoadFrom(filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, defaultAppPort, AppPort())
	assert.Equal(t, defaultSessionTTL, SessionTTL())
	assert.Equal(t, defaultOrdersCacheTTL, OrdersCacheTTL())
	assert.True(t, CookieSecure())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeEnv(t, "APP_PORT=9000\n")
	require.NoError(t, LoadFrom(path))
	t.Cleanup(func() { _ = LoadFrom("testdata/missing.env") })

	t.Setenv("APP_PORT", "9100")
	assert.Equal(t, "9100", AppPort())
}

func TestRequire(t *testing.T) {
	require.NoError(t, LoadFrom(filepath.Join(t.TempDir(), "none")))
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGODB_URI", "")

	err := Require("JWT_SECRET", "MONGODB_URI")
	require.ErrorIs(t, err, ErrMissingConfiguration)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "MONGODB_URI")

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	assert.NoError(t, Require("JWT_SECRET", "MONGODB_URI"))
}

func TestBookingLocationFallsBackToUTC(t *testing.T) {
	t.Setenv("BOOKING_TIMEZONE", "Nowhere/Invalid")
	assert.Equal(t, time.UTC, BookingLocation())

	t.Setenv("BOOKING_TIMEZONE", "Asia/Kolkata")
	assert.Equal(t, "Asia/Kolkata", BookingLocation().String())
}

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())

	t.Setenv("CORS_ORIGINS", "")
	assert.Nil(t, CORSOrigins())
}
