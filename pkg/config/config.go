// Package config provides unified configuration for the vorlesung server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (VORLESUNG_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the vorlesung server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Auth          AuthConfig          `yaml:"auth"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8000
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 0 (SSE streams stay open)

	// AssetsDir is the root directory for widget static assets.
	// Empty disables static serving; the embedded widget HTML is
	// used instead.
	AssetsDir string `yaml:"assets_dir"`

	// AllowedOrigins lists origins echoed back in CORS headers.
	// Requests from other origins receive a wildcard.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// CatalogConfig holds upstream course-catalog API settings. Absent
// credentials are not fatal: the pipeline runs permanently in mock-data
// mode for the process lifetime.
type CatalogConfig struct {
	APIBase       string        `yaml:"api_base"`        // default: https://api.coursera.org
	APIKey        string        `yaml:"api_key"`         // optional
	APIKeyFile    string        `yaml:"api_key_file"`    // _file variant for api_key
	APISecret     string        `yaml:"api_secret"`      // optional
	APISecretFile string        `yaml:"api_secret_file"` // _file variant for api_secret
	Timeout       time.Duration `yaml:"timeout"`         // default: 15s
}

// AuthConfig holds authentication settings for the message endpoint.
type AuthConfig struct {
	Type    string         `yaml:"type"`     // "none", "apikey", "jwt", default: "none"
	APIKeys []APIKeyConfig `yaml:"api_keys"` // API key entries for type=apikey
	JWT     JWTConfig      `yaml:"jwt"`      // settings for type=jwt
}

// APIKeyConfig describes a single API key entry.
type APIKeyConfig struct {
	Key     string `yaml:"key"`
	KeyFile string `yaml:"key_file"` // _file variant for key
	Subject string `yaml:"subject"`
}

// JWTConfig holds HMAC JWT validation settings.
type JWTConfig struct {
	Secret     string `yaml:"secret"`
	SecretFile string `yaml:"secret_file"` // _file variant for secret
	Issuer     string `yaml:"issuer"`      // optional expected issuer
	Audience   string `yaml:"audience"`    // optional expected audience
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:        8000,
			ReadTimeout: 30 * time.Second,
		},
		Catalog: CatalogConfig{
			APIBase: "https://api.coursera.org",
			Timeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			Type: "none",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

// LiveSearchEnabled reports whether both catalog credentials are present,
// i.e. whether live lookups are possible at all.
func (c *Config) LiveSearchEnabled() bool {
	return c.Catalog.APIKey != "" && c.Catalog.APISecret != ""
}
