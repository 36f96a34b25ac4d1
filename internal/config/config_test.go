package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/jobfair")
}

func TestLoad_FailsFastOnMissingSettings(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		dsn     string
		missing string
	}{
		{name: "no secret", secret: "", dsn: "dsn", missing: "JWT_SECRET"},
		{name: "no dsn", secret: "s3cr3t", dsn: "", missing: "MYSQL_DSN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("MYSQL_DSN", tt.dsn)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, ErrMissingSetting))
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.TokenRevocation)
	assert.Equal(t, "token", cfg.CookieName)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, time.Hour, cfg.IdentityCacheTTL)
	assert.Equal(t, []string{"http://localhost:4200", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("IDENTITY_CACHE_TTL", "120")
	t.Setenv("TOKEN_REVOCATION", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 2*time.Minute, cfg.IdentityCacheTTL)
	assert.False(t, cfg.TokenRevocation)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "-5m")

	_, err := Load()
	assert.Error(t, err)
}
