package configs

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // restore nilai lama saat cleanup
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "RAILWAY_ENVIRONMENT", "APP_ENV", "PORT", "ACCESS_TOKEN_TTL",
		"TOKEN_BLACKLIST_CLEANUP_CRON", "CORS_ORIGINS", "BULK_MARK_CONCURRENCY", "ADMIN_NAME", "DB_SSLMODE")

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "@daily", cfg.BlacklistCleanupCron)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 8, cfg.BulkConcurrency)
	assert.Equal(t, "Administrator", cfg.AdminName)
	assert.Equal(t, "require", cfg.DBSSLMode)
}

func TestLoad_Overrides(t *testing.T) {
	unsetEnv(t, "RAILWAY_ENVIRONMENT")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "  s3cret  ")
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example ")
	t.Setenv("BULK_MARK_CONCURRENCY", "16")
	t.Setenv("SEED_USERS_FILE", " seeds.json ")

	cfg := Load()
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 16, cfg.BulkConcurrency)
	assert.Equal(t, "seeds.json", cfg.SeedUsersFile)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "-5m")
	t.Setenv("BULK_MARK_CONCURRENCY", "banyak")
	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 8, cfg.BulkConcurrency)

	t.Setenv("BULK_MARK_CONCURRENCY", "0")
	assert.Equal(t, 1, Load().BulkConcurrency)
}
