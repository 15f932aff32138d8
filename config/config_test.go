package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:          "3000",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "budget-app-test",
		JWTSecret:     "secret",
		TokenTTL:      24 * time.Hour,
		LogLevel:      "info",
		SweepInterval: time.Hour,
		SweepGrace:    24 * time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Port = "abc" },
			wantErr: `invalid port "abc"`,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: "must be between 1 and 65535",
		},
		{
			name:    "missing mongo uri",
			mutate:  func(c *Config) { c.MongoURI = "" },
			wantErr: "MONGO_URI must be set",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET must be set",
		},
		{
			name:    "zero token ttl",
			mutate:  func(c *Config) { c.TokenTTL = 0 },
			wantErr: "TOKEN_TTL must be positive",
		},
		{
			name:    "negative sweep grace",
			mutate:  func(c *Config) { c.SweepGrace = -time.Hour },
			wantErr: "SWEEP_GRACE must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if !cfg.Development {
		t.Error("Development should default to true")
	}
}
