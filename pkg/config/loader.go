package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, VORLESUNG_CONFIG env, ./config.yaml, /etc/vorlesung/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. VORLESUNG_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/vorlesung/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check VORLESUNG_CONFIG env var.
	if envPath := os.Getenv("VORLESUNG_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"config.yaml",
		"/etc/vorlesung/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VORLESUNG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("VORLESUNG_ASSETS_DIR"); v != "" {
		cfg.Server.AssetsDir = v
	}
	if v := os.Getenv("VORLESUNG_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.AllowedOrigins = origins
	}
	if v := os.Getenv("VORLESUNG_CATALOG_API_BASE"); v != "" {
		cfg.Catalog.APIBase = v
	}
	if v := os.Getenv("VORLESUNG_CATALOG_API_KEY"); v != "" {
		cfg.Catalog.APIKey = v
	}
	if v := os.Getenv("VORLESUNG_CATALOG_API_SECRET"); v != "" {
		cfg.Catalog.APISecret = v
	}
	if v := os.Getenv("VORLESUNG_AUTH_TYPE"); v != "" {
		cfg.Auth.Type = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and
// the value field is populated.
func resolveFileReferences(cfg *Config) error {
	// catalog.api_key_file -> catalog.api_key
	if cfg.Catalog.APIKeyFile != "" && cfg.Catalog.APIKey == "" {
		val, err := readSecretFile(cfg.Catalog.APIKeyFile)
		if err != nil {
			return fmt.Errorf("catalog.api_key_file: %w", err)
		}
		cfg.Catalog.APIKey = val
	}

	// catalog.api_secret_file -> catalog.api_secret
	if cfg.Catalog.APISecretFile != "" && cfg.Catalog.APISecret == "" {
		val, err := readSecretFile(cfg.Catalog.APISecretFile)
		if err != nil {
			return fmt.Errorf("catalog.api_secret_file: %w", err)
		}
		cfg.Catalog.APISecret = val
	}

	// auth.jwt.secret_file -> auth.jwt.secret
	if cfg.Auth.JWT.SecretFile != "" && cfg.Auth.JWT.Secret == "" {
		val, err := readSecretFile(cfg.Auth.JWT.SecretFile)
		if err != nil {
			return fmt.Errorf("auth.jwt.secret_file: %w", err)
		}
		cfg.Auth.JWT.Secret = val
	}

	// auth.api_keys[*].key_file -> auth.api_keys[*].key
	for i := range cfg.Auth.APIKeys {
		if cfg.Auth.APIKeys[i].KeyFile != "" && cfg.Auth.APIKeys[i].Key == "" {
			val, err := readSecretFile(cfg.Auth.APIKeys[i].KeyFile)
			if err != nil {
				return fmt.Errorf("auth.api_keys[%d].key_file: %w", i, err)
			}
			cfg.Auth.APIKeys[i].Key = val
		}
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding
// whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
