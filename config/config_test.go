package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homehub/services"
)

var configKeys = []string{
	"ENV", "PORT", "JWT_SECRET", "ALLOWED_ORIGINS", "STORAGE_BACKEND", "STORAGE_DIR",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "SECURE_STORE_KEY", "MONGODB_URI",
	"MONGODB_DATABASE", "BCRYPT_COST", "PROXIMITY_POLICY", "FALLBACK_LAT", "FALLBACK_LON",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, services.ProximityExclude, cfg.Proximity.Mode)
	assert.Equal(t, 6.5244, cfg.Proximity.Fallback.Latitude)
	assert.Equal(t, 3.3792, cfg.Proximity.Fallback.Longitude)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:3000")
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PROXIMITY_POLICY", "fallback")
	t.Setenv("FALLBACK_LAT", "51.5")
	t.Setenv("FALLBACK_LON", "-0.12")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, services.ProximityFallback, cfg.Proximity.Mode)
	assert.Equal(t, 51.5, cfg.Proximity.Fallback.Latitude)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"bad backend":      {"STORAGE_BACKEND": "sqlite"},
		"bad redis db":     {"REDIS_DB": "zero"},
		"bad policy":       {"PROXIMITY_POLICY": "closest"},
		"bad fallback":     {"FALLBACK_LAT": "200"},
		"prod needs jwt":   {"ENV": "production", "SECURE_STORE_KEY": "00"},
		"prod needs a key": {"ENV": "production", "JWT_SECRET": "s"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := fromEnv()
			assert.Error(t, err)
		})
	}
}
