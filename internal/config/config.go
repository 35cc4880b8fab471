package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const ServiceName = "news"

// DefaultJWTSecret is only meant for local runs.
const DefaultJWTSecret = "news-secret-key-change-me"

// Config represents the application configuration
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Auth     AuthConfig    `yaml:"auth"`
	Storage  StorageConfig `yaml:"storage"`
	Uploads  UploadConfig  `yaml:"uploads"`
	LogLevel string        `yaml:"log_level"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	DiagAddr    string   `yaml:"diag_addr"`
	BaseURL     string   `yaml:"base_url"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// AuthConfig selects how session tokens are issued. TokenTTL is a Go
// duration string, "0" disables expiry.
type AuthConfig struct {
	TokenMode string `yaml:"token_mode"`
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTL  string `yaml:"token_ttl"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type UploadConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":5005",
			DiagAddr:    ":9999",
			BaseURL:     "http://localhost:5005",
			CORSOrigins: []string{"*"},
		},
		Auth: AuthConfig{
			TokenMode: "jwt",
			JWTSecret: DefaultJWTSecret,
			TokenTTL:  "24h",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Uploads: UploadConfig{
			Dir:      "./static/uploads",
			MaxBytes: 16 << 20,
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, cfg.Validate()
}

func envKey(name string) string {
	return strings.ToUpper(ServiceName + "_" + name)
}

// applyEnvOverrides overrides configuration with NEWS_* environment variables
func applyEnvOverrides(cfg *Config) {
	cfg.Server.Addr = GetEnv(envKey("addr"), cfg.Server.Addr)
	cfg.Server.DiagAddr = GetEnv(envKey("diag_addr"), cfg.Server.DiagAddr)
	cfg.Server.BaseURL = GetEnv(envKey("base_url"), cfg.Server.BaseURL)
	if origins := os.Getenv(envKey("cors_origins")); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}

	cfg.Auth.TokenMode = GetEnv(envKey("token_mode"), cfg.Auth.TokenMode)
	cfg.Auth.JWTSecret = GetEnv(envKey("jwt_secret"), cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = GetEnv(envKey("token_ttl"), cfg.Auth.TokenTTL)

	cfg.Storage.Driver = GetEnv(envKey("storage_driver"), cfg.Storage.Driver)
	cfg.Storage.DSN = GetEnv(envKey("storage_dsn"), cfg.Storage.DSN)

	cfg.Uploads.Dir = GetEnv(envKey("upload_dir"), cfg.Uploads.Dir)
	cfg.LogLevel = GetEnv(envKey("log_level"), cfg.LogLevel)
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Auth.TokenMode {
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret is required in jwt token mode")
		}
	case "legacy":
	default:
		return fmt.Errorf("unknown auth.token_mode %q", c.Auth.TokenMode)
	}

	if _, err := c.Auth.TTL(); err != nil {
		return err
	}

	switch c.Storage.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Uploads.MaxBytes <= 0 {
		return errors.New("uploads.max_bytes must be positive")
	}

	return nil
}

// UsesDefaultSecret reports whether JWTs would be signed with the built-in
// secret, which anyone reading this source can forge tokens with.
func (a AuthConfig) UsesDefaultSecret() bool {
	return a.TokenMode == "jwt" && a.JWTSecret == DefaultJWTSecret
}

func (a AuthConfig) TTL() (time.Duration, error) {
	if a.TokenTTL == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(a.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("parsing auth.token_ttl: %w", err)
	}

	return d, nil
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return b
}
