package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the server
type Config struct {
	// Host and Port form the listen address
	Host string
	Port string

	// Redis connection settings
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Fixed operator identity for host login
	HostUsername string
	HostPassword string

	// PublicBaseURL is the externally reachable base URL, used to
	// build voter join links
	PublicBaseURL string
}

// Load reads configuration from the environment. A .env file is
// honored when present.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars still apply
	_ = godotenv.Load()

	cfg := &Config{
		Host:          getEnv("HOST", ""),
		Port:          getEnv("PORT", "3000"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		HostUsername:  os.Getenv("HOST_USERNAME"),
		HostPassword:  os.Getenv("HOST_PASSWORD"),
	}

	db := getEnv("REDIS_DB", "0")
	redisDB, err := strconv.Atoi(db)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
	}
	cfg.RedisDB = redisDB

	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)

	if cfg.HostUsername == "" || cfg.HostPassword == "" {
		return nil, fmt.Errorf("HOST_USERNAME and HOST_PASSWORD are required")
	}

	return cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
