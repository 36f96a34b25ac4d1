package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSetting is returned by Load when a required variable is unset.
var ErrMissingSetting = errors.New("missing required setting")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret       string
	TokenTTL        time.Duration
	TokenRevocation bool
	CookieName      string
	CookieSecure    bool

	IdentityCacheTTL  time.Duration
	IdentityCacheSize int

	LoginRateLimit  int
	LoginRateWindow time.Duration

	CORSOrigins []string

	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3PresignTTL time.Duration

	SwaggerHost string
	LogLevel    string
	LogFormat   string
	ResetDB     bool
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present. JWT_SECRET and MYSQL_DSN
// have no defaults: Load fails when either is empty.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   os.Getenv("MYSQL_DSN"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		TokenRevocation: getEnvBool("TOKEN_REVOCATION", true),
		CookieName:      getEnv("COOKIE_NAME", "token"),
		CookieSecure:    getEnvBool("COOKIE_SECURE", true),

		IdentityCacheTTL:  getEnvDuration("IDENTITY_CACHE_TTL", time.Hour),
		IdentityCacheSize: getEnvInt("IDENTITY_CACHE_SIZE", 1024),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:4200", "http://localhost:3000"}),

		S3Bucket:     getEnv("S3_BUCKET", "jobfair"),
		S3Region:     getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3PresignTTL: getEnvDuration("S3_PRESIGN_TTL", 15*time.Minute),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		ResetDB:     getEnvBool("RESET_DB", false),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET", ErrMissingSetting)
	}
	if cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("%w: MYSQL_DSN", ErrMissingSetting)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("90m") or a plain number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if parsed, err := time.ParseDuration(v); err == nil {
		return parsed
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
