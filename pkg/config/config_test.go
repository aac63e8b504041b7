package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Catalog.APIBase != "https://api.coursera.org" {
		t.Errorf("default api base = %q", cfg.Catalog.APIBase)
	}
	if cfg.Catalog.Timeout != 15*time.Second {
		t.Errorf("default catalog timeout = %v, want 15s", cfg.Catalog.Timeout)
	}
	if cfg.Auth.Type != "none" {
		t.Errorf("default auth type = %q, want none", cfg.Auth.Type)
	}
	if !cfg.Observability.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.LiveSearchEnabled() {
		t.Error("live search should be disabled without credentials")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9001
  allowed_origins:
    - https://zerotwo.ai
    - http://localhost:3000
catalog:
  api_key: test-key
  api_secret: test-secret
  timeout: 5s
auth:
  type: apikey
  api_keys:
    - key: secret123
      subject: ci
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("port = %d, want 9001", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("allowed origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Catalog.Timeout != 5*time.Second {
		t.Errorf("catalog timeout = %v, want 5s", cfg.Catalog.Timeout)
	}
	if !cfg.LiveSearchEnabled() {
		t.Error("live search should be enabled with both credentials")
	}
	if cfg.Auth.Type != "apikey" || len(cfg.Auth.APIKeys) != 1 {
		t.Errorf("auth not loaded: %+v", cfg.Auth)
	}
	// Unset fields keep their defaults.
	if cfg.Catalog.APIBase != "https://api.coursera.org" {
		t.Errorf("api base should keep default, got %q", cfg.Catalog.APIBase)
	}
	if !cfg.Observability.Metrics.Enabled {
		t.Error("metrics default should survive partial YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VORLESUNG_PORT", "7777")
	t.Setenv("VORLESUNG_CATALOG_API_BASE", "http://localhost:9090")
	t.Setenv("VORLESUNG_CATALOG_API_KEY", "env-key")
	t.Setenv("VORLESUNG_CATALOG_API_SECRET", "env-secret")
	t.Setenv("VORLESUNG_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Catalog.APIBase != "http://localhost:9090" {
		t.Errorf("api base = %q", cfg.Catalog.APIBase)
	}
	if !cfg.LiveSearchEnabled() {
		t.Error("live search should be enabled via env credentials")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[0] != want[0] || cfg.Server.AllowedOrigins[1] != want[1] {
		t.Errorf("allowed origins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
}

func TestFileReferences(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "api_key")
	secretPath := filepath.Join(dir, "api_secret")
	if err := os.WriteFile(keyPath, []byte("file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(secretPath, []byte("  file-secret  "), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	cfg.Catalog.APIKeyFile = keyPath
	cfg.Catalog.APISecretFile = secretPath
	if err := resolveFileReferences(&cfg); err != nil {
		t.Fatalf("resolveFileReferences: %v", err)
	}

	if cfg.Catalog.APIKey != "file-key" {
		t.Errorf("api key = %q, want trimmed file content", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.APISecret != "file-secret" {
		t.Errorf("api secret = %q, want trimmed file content", cfg.Catalog.APISecret)
	}
}

func TestFileReferenceDoesNotOverrideValue(t *testing.T) {
	cfg := Defaults()
	cfg.Catalog.APIKey = "direct"
	cfg.Catalog.APIKeyFile = "/nonexistent/path"
	cfg.Catalog.APISecret = "s"

	// Direct value wins; the file is never read.
	if err := resolveFileReferences(&cfg); err != nil {
		t.Fatalf("resolveFileReferences: %v", err)
	}
	if cfg.Catalog.APIKey != "direct" {
		t.Errorf("api key = %q, want direct value", cfg.Catalog.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "empty api base",
			mutate:  func(c *Config) { c.Catalog.APIBase = "" },
			wantErr: "api_base",
		},
		{
			name:    "malformed api base",
			mutate:  func(c *Config) { c.Catalog.APIBase = "not a url" },
			wantErr: "api_base",
		},
		{
			name:    "key without secret",
			mutate:  func(c *Config) { c.Catalog.APIKey = "k" },
			wantErr: "must be set together",
		},
		{
			name:    "apikey auth without keys",
			mutate:  func(c *Config) { c.Auth.Type = "apikey" },
			wantErr: "no api_keys",
		},
		{
			name:    "jwt auth without secret",
			mutate:  func(c *Config) { c.Auth.Type = "jwt" },
			wantErr: "no jwt.secret",
		},
		{
			name:    "unknown auth type",
			mutate:  func(c *Config) { c.Auth.Type = "oauth" },
			wantErr: "auth.type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfigFile(t *testing.T) {
	// Explicit path wins over everything.
	t.Setenv("VORLESUNG_CONFIG", "/env/config.yaml")
	if got := discoverConfigFile("/explicit.yaml"); got != "/explicit.yaml" {
		t.Errorf("discover = %q, want explicit path", got)
	}
	// Env var wins when no explicit path.
	if got := discoverConfigFile(""); got != "/env/config.yaml" {
		t.Errorf("discover = %q, want env path", got)
	}
}
