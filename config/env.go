package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort        = "8080"
	defaultAppEnv         = "local"
	defaultRedisAddr      = "localhost:6379"
	defaultSessionTTL     = 7 * 24 * time.Hour
	defaultOrdersCacheTTL = 30 * time.Second
	defaultBookingZone    = "Asia/Kolkata"
)

// ErrMissingConfiguration is wrapped by Require when mandatory keys are unset.
var ErrMissingConfiguration = errors.New("config: missing configuration")

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads .env from the working directory once. A missing file is not an
// error; process environment variables always win over file values.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFrom(".env")
	})
	return loadErr
}

// LoadFrom replaces the file-backed values with defaults merged with path.
// Calling it first suppresses the implicit .env read done by Load.
func LoadFrom(path string) error {
	loadOnce.Do(func() {})
	return loadFrom(path)
}

func loadFrom(path string) error {
	loaded := defaultValues()

	fileValues, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	for k, v := range fileValues {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		loaded[k] = strings.TrimSpace(v)
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

// Set overrides a single key in the file-backed layer.
func Set(key, value string) {
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}

// Require reports every key in keys that resolves to an empty value.
func Require(keys ...string) error {
	_ = Load()

	var missing []string
	for _, k := range keys {
		if get(k, "") == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":   defaultAppPort,
		"APP_ENV":    defaultAppEnv,
		"REDIS_ADDR": defaultRedisAddr,
	}
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

// ── Store ────────────────────────────────────────────────────────────────────

func MongoURI() string {
	_ = Load()
	return get("MONGODB_URI", "")
}

// MongoDatabase is empty unless set explicitly; the database package then
// falls back to the name embedded in the URI.
func MongoDatabase() string {
	_ = Load()
	return get("MONGODB_DATABASE", "")
}

func LogToMongo() bool {
	_ = Load()
	return getBool("LOG_TO_MONGO", false)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", "")
}

func SessionTTL() time.Duration {
	_ = Load()
	return getDuration("SESSION_TTL", defaultSessionTTL)
}

func CookieSecure() bool {
	_ = Load()
	return getBool("COOKIE_SECURE", true)
}

// ── Cache ────────────────────────────────────────────────────────────────────

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func OrdersCacheTTL() time.Duration {
	_ = Load()
	return getDuration("ORDERS_CACHE_TTL", defaultOrdersCacheTTL)
}

// ── Booking ──────────────────────────────────────────────────────────────────

// BookingLocation is the zone booking dates and times are interpreted in.
// An unknown zone name falls back to UTC.
func BookingLocation() *time.Location {
	_ = Load()
	loc, err := time.LoadLocation(get("BOOKING_TIMEZONE", defaultBookingZone))
	if err != nil {
		return time.UTC
	}
	return loc
}

// CORSOrigins returns the comma-separated CORS_ORIGINS list, or nil.
func CORSOrigins() []string {
	_ = Load()
	raw := get("CORS_ORIGINS", "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func get(key, fallback string) string {
	key = strings.ToUpper(key)
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(get(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(get(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
