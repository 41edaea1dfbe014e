package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	// ReferenceTimezone is the IANA zone every rule applicability
	// comparison is evaluated in. It is deliberately explicit rather
	// than process-local time so two calls with the same absolute
	// instant always agree.
	ReferenceTimezone string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RateLimit RateLimitConfig

	SeedDemoData bool
}

// RateLimitConfig controls the redis token bucket guarding /api/resolve.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ResolveUserRate  float64
	ResolveUserBurst int
}

// Module provides Config and the reference *time.Location.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(ReferenceLocation),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:           getenv("APP_SERVICE", "geotoll"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		ReferenceTimezone: getenv("REFERENCE_TIMEZONE", "UTC"),
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "geotoll"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 10),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 50),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		RateLimit: RateLimitConfig{
			Enabled:          getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:        getenv("RATE_LIMIT_REDIS_ADDR", ""),
			RedisPassword:    getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:          getenvInt("RATE_LIMIT_REDIS_DB", 0),
			ResolveUserRate:  getenvFloat("RATE_LIMIT_RESOLVE_USER_RATE", 5),
			ResolveUserBurst: getenvInt("RATE_LIMIT_RESOLVE_USER_BURST", 10),
		},
		SeedDemoData: getenvBool("SEED_DEMO_DATA", false),
	}
}

// ReferenceLocation resolves the configured reference timezone.
func ReferenceLocation(cfg Config) (*time.Location, error) {
	return time.LoadLocation(cfg.ReferenceTimezone)
}

func getenv(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
