package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Persistence backends accepted by PERSISTENCE_BACKEND
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Dev-only fallbacks, refused outside dev.
const (
	devSitePassword    = "demo123"
	devManagerPassword = "admin123"
	devSessionSecret   = "dev-session-secret-change-me"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Persistence
	Backend     string
	DataDir     string
	SQLitePath  string
	DatabaseURL string
	TablePrefix string

	// Auth gate
	SitePassword        string // plain; hashed at startup
	SitePasswordHash    string // bcrypt
	ManagerPassword     string
	ManagerPasswordHash string
	SessionSecret       string
	SessionTTL          time.Duration
	JWKSURL             string // remote secret; empty disables

	// Logging
	LogLevel    string // debug, info, warn, error; empty = debug in dev, else info
	LogDir      string
	LogMaxFiles int
}

// Load reads .env (if present) and resolves configuration from the
// environment. configFile is an optional YAML file with the same keys.
func Load(configFile string) (*Config, error) {
	// Silently ignore a missing .env (production injects real env vars)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	env := v.GetString("ENVIRONMENT")
	dataDir := v.GetString("DATA_DIR")
	sqlitePath := v.GetString("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join(dataDir, "library.db")
	}

	cfg := &Config{
		Port:                v.GetString("PORT"),
		Environment:         env,
		CORSOrigins:         v.GetString("CORS_ORIGINS"),
		Backend:             strings.ToLower(v.GetString("PERSISTENCE_BACKEND")),
		DataDir:             dataDir,
		SQLitePath:          sqlitePath,
		DatabaseURL:         v.GetString("DATABASE_URL"),
		TablePrefix:         getTablePrefix(v, env),
		SitePassword:        v.GetString("SITE_PASSWORD"),
		SitePasswordHash:    v.GetString("SITE_PASSWORD_HASH"),
		ManagerPassword:     v.GetString("MANAGER_PASSWORD"),
		ManagerPasswordHash: v.GetString("MANAGER_PASSWORD_HASH"),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		SessionTTL:          v.GetDuration("SESSION_TTL"),
		JWKSURL:             v.GetString("JWKS_URL"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		LogDir:              v.GetString("LOG_DIR"),
		LogMaxFiles:         v.GetInt("LOG_MAX_FILES"),
	}

	if env == "dev" {
		applyDevSecrets(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("PERSISTENCE_BACKEND", BackendFile)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("SQLITE_PATH", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("TABLE_PREFIX", "")
	v.SetDefault("SITE_PASSWORD", "")
	v.SetDefault("SITE_PASSWORD_HASH", "")
	v.SetDefault("MANAGER_PASSWORD", "")
	v.SetDefault("MANAGER_PASSWORD_HASH", "")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("JWKS_URL", "")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("LOG_MAX_FILES", 10)
}

// applyDevSecrets fills unset credentials so a fresh checkout runs locally
func applyDevSecrets(cfg *Config) {
	if cfg.SitePassword == "" && cfg.SitePasswordHash == "" {
		cfg.SitePassword = devSitePassword
	}
	if cfg.ManagerPassword == "" && cfg.ManagerPasswordHash == "" {
		cfg.ManagerPassword = devManagerPassword
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = devSessionSecret
	}
}

// Validate checks the combinations Load cannot default
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown PERSISTENCE_BACKEND %q (memory, file, sqlite, postgres)", c.Backend)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required outside dev")
	}
	if c.SitePassword == "" && c.SitePasswordHash == "" && c.JWKSURL == "" {
		return fmt.Errorf("set SITE_PASSWORD_HASH (or SITE_PASSWORD) or JWKS_URL")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q (debug, info, warn, error)", c.LogLevel)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(v *viper.Viper, env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := v.GetString("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}
