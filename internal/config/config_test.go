package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
  cors_origins:
    - http://localhost:5173
auth:
  token_mode: legacy
storage:
  driver: sqlite
  dsn: "file:news.db"
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Server.DiagAddr != ":9999" {
		t.Errorf("expected default diag addr to survive, got %q", cfg.Server.DiagAddr)
	}
	if diff := cmp.Diff([]string{"http://localhost:5173"}, cfg.Server.CORSOrigins); diff != "" {
		t.Errorf("cors origins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Auth.TokenMode != "legacy" {
		t.Errorf("expected legacy token mode, got %q", cfg.Auth.TokenMode)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.DSN != "file:news.db" {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_ADDR", ":7000")
	t.Setenv("NEWS_JWT_SECRET", "from-env")
	t.Setenv("NEWS_TOKEN_TTL", "1h")
	t.Setenv("NEWS_CORS_ORIGINS", "http://a,http://b")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr != ":7000" {
		t.Errorf("expected :7000, got %q", cfg.Server.Addr)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("expected secret from env, got %q", cfg.Auth.JWTSecret)
	}
	ttl, err := cfg.Auth.TTL()
	if err != nil || ttl != time.Hour {
		t.Errorf("TTL() = %v, %v; want 1h", ttl, err)
	}
	if diff := cmp.Diff([]string{"http://a", "http://b"}, cfg.Server.CORSOrigins); diff != "" {
		t.Errorf("cors origins mismatch (-want +got):\n%s", diff)
	}
}

func TestUsesDefaultSecret(t *testing.T) {
	tests := []struct {
		name string
		auth AuthConfig
		want bool
	}{
		{"defaults", DefaultConfig().Auth, true},
		{"own secret", AuthConfig{TokenMode: "jwt", JWTSecret: "s3cret"}, false},
		{"legacy tokens", AuthConfig{TokenMode: "legacy", JWTSecret: DefaultJWTSecret}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.auth.UsesDefaultSecret(); got != tt.want {
				t.Errorf("UsesDefaultSecret() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unterminated"},
		{"unknown token mode", "auth:\n  token_mode: macaroon\n"},
		{"empty secret", "auth:\n  jwt_secret: \"\"\n"},
		{"bad ttl", "auth:\n  token_ttl: soon\n"},
		{"unknown driver", "storage:\n  driver: postgres\n"},
		{"zero upload size", "uploads:\n  max_bytes: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("NEWS_TEST_BOOL", "true")
	t.Setenv("NEWS_TEST_BAD", "maybe")

	if !GetEnvBool("NEWS_TEST_BOOL", false) {
		t.Error("expected true")
	}
	if !GetEnvBool("NEWS_TEST_BAD", true) {
		t.Error("expected fallback for unparsable value")
	}
	if GetEnvBool("NEWS_TEST_UNSET", false) {
		t.Error("expected fallback for unset value")
	}
}
