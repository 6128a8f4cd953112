package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"homehub/models"
	"homehub/services"
)

const devJWTSecret = "homehub-dev-secret-change-me"

type Config struct {
	Environment    string
	Port           string
	JWTSecret      string
	AllowedOrigins []string

	// StorageBackend is one of memory, file or redis.
	StorageBackend string
	StorageDir     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	// SecureStoreKey is 64 hex chars. Empty in development means an ephemeral key.
	SecureStoreKey string

	MongoURI      string
	MongoDatabase string

	BcryptCost int
	Proximity  services.ProximityPolicy
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	cfg := &Config{
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8081,http://localhost:19006")),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "file")),
		StorageDir:     getEnv("STORAGE_DIR", ".homehub"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SecureStoreKey: getEnv("SECURE_STORE_KEY", ""),
		MongoURI:       getEnv("MONGODB_URI", ""),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "homehub"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}

	mode, err := services.ParseProximityMode(getEnv("PROXIMITY_POLICY", ""))
	if err != nil {
		return nil, err
	}
	lat, err := getFloat("FALLBACK_LAT", 6.5244)
	if err != nil {
		return nil, err
	}
	lon, err := getFloat("FALLBACK_LON", 3.3792)
	if err != nil {
		return nil, err
	}
	cfg.Proximity = services.ProximityPolicy{Mode: mode, Fallback: models.Coordinate{Latitude: lat, Longitude: lon}}
	if !cfg.Proximity.Fallback.Valid() {
		return nil, fmt.Errorf("FALLBACK_LAT/FALLBACK_LON out of range")
	}

	switch cfg.StorageBackend {
	case "memory", "file", "redis":
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.SecureStoreKey == "" && cfg.IsProduction() {
		return nil, fmt.Errorf("SECURE_STORE_KEY environment variable is not set")
	}
	return cfg, nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
