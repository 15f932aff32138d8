package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Logging
	Development bool
	LogLevel    string

	// Orphan sweeper
	SweepInterval time.Duration
	SweepGrace    time.Duration
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "budget-app"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),
		Development:   getEnv("APP_ENV", "development") != "production",
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Hour),
		SweepGrace:    getEnvDuration("SWEEP_GRACE", 24*time.Hour),
	}
}

// Validate returns an error listing every invalid or missing setting.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.MongoURI == "" {
		problems = append(problems, "MONGO_URI must be set")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		problems = append(problems, "SWEEP_INTERVAL must be positive")
	}
	if c.SweepGrace < 0 {
		problems = append(problems, "SWEEP_GRACE must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
