// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"DELTA_DB_PATH" envDefault:"./data/delta.db"`
	SessionSecret string `env:"DELTA_SESSION_SECRET,required"`
	ServerHost    string `env:"DELTA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"DELTA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"DELTA_ENV" envDefault:"development"`
	LogLevel      string `env:"DELTA_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"DELTA_UPLOADS_DIR" envDefault:"./uploads"`

	// Snapshot medium configuration
	RedisURL       string `env:"DELTA_REDIS_URL"`                     // optional Redis URL for the snapshot medium
	SnapshotPrefix string `env:"DELTA_KV_PREFIX" envDefault:"delta:"` // Redis key prefix

	// Scheduled snapshot backups
	BackupDir  string `env:"DELTA_BACKUP_DIR" envDefault:"./backups"`
	BackupCron string `env:"DELTA_BACKUP_CRON" envDefault:"0 3 * * *"` // daily at 03:00

	// GeoIP configuration
	GeoIPDBPath string `env:"DELTA_GEOIP_DB_PATH"` // path to GeoLite2-Country.mmdb file

	// Legacy import (MySQL DSN of the PHP-era database)
	LegacyDSN string `env:"DELTA_LEGACY_DSN"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if the Redis snapshot medium is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("DELTA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("DELTA_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("DELTA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
