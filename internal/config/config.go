package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	Env                string   `mapstructure:"ENV"`
	DatabaseURL        string   `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32    `mapstructure:"DB_MIN_CONNS"`
	RedisURL           string   `mapstructure:"REDIS_URL"`
	AuthServiceURL     string   `mapstructure:"AUTH_SERVICE_URL"`
	AuthTimeoutSeconds int      `mapstructure:"AUTH_TIMEOUT_SECONDS"`
	SessionTTLHours    int      `mapstructure:"SESSION_TTL_HOURS"`
	CORSOrigins        []string `mapstructure:"CORS_ORIGINS"`
	BlobDriver         string   `mapstructure:"BLOB_DRIVER"`
	BlobS3Bucket       string   `mapstructure:"BLOB_S3_BUCKET"`
	BlobS3Region       string   `mapstructure:"BLOB_S3_REGION"`
	BlobS3Endpoint     string   `mapstructure:"BLOB_S3_ENDPOINT"`
	BlobS3PathStyle    bool     `mapstructure:"BLOB_S3_PATH_STYLE"`
	DefaultCountryCode string   `mapstructure:"DEFAULT_COUNTRY_CODE"`
	LoginLinkBase      string   `mapstructure:"LOGIN_LINK_BASE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("AUTH_TIMEOUT_SECONDS", 10)
	v.SetDefault("SESSION_TTL_HOURS", 12)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("BLOB_DRIVER", "memory")
	v.SetDefault("DEFAULT_COUNTRY_CODE", "+91")
	v.SetDefault("LOGIN_LINK_BASE", "http://localhost:3000/auth")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("AUTH_SERVICE_URL")
	v.BindEnv("AUTH_TIMEOUT_SECONDS")
	v.BindEnv("SESSION_TTL_HOURS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("BLOB_DRIVER")
	v.BindEnv("BLOB_S3_BUCKET")
	v.BindEnv("BLOB_S3_REGION")
	v.BindEnv("BLOB_S3_ENDPOINT")
	v.BindEnv("BLOB_S3_PATH_STYLE")
	v.BindEnv("DEFAULT_COUNTRY_CODE")
	v.BindEnv("LOGIN_LINK_BASE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AuthTimeout returns the bound on the remote session-issuing call. The
// login flow falls back to directory-only identities when it elapses.
func (c *Config) AuthTimeout() time.Duration {
	if c.AuthTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.AuthTimeoutSeconds) * time.Second
}

// SessionTTL returns how long a stored identity survives without sign-out.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// Validate checks that the configuration is safe to run. In production the
// blob driver must not silently fall back to the in-memory store, and the
// remote auth service must be configured.
func (c *Config) Validate() error {
	switch c.BlobDriver {
	case "memory", "s3":
	default:
		return fmt.Errorf("BLOB_DRIVER must be \"memory\" or \"s3\", got %q", c.BlobDriver)
	}
	if c.BlobDriver == "s3" && c.BlobS3Bucket == "" {
		return fmt.Errorf("BLOB_S3_BUCKET is required when BLOB_DRIVER is \"s3\"")
	}
	if c.IsProduction() {
		if c.AuthServiceURL == "" {
			return fmt.Errorf("AUTH_SERVICE_URL is required in production")
		}
		if c.BlobDriver == "memory" {
			return fmt.Errorf("BLOB_DRIVER \"memory\" is not allowed in production")
		}
	}
	return nil
}
