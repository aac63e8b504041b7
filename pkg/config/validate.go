package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for consistency. It is called as the
// final step of Load, after all sources have been merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must not be negative")
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must not be negative")
	}

	if c.Catalog.APIBase == "" {
		return fmt.Errorf("catalog.api_base must not be empty")
	}
	u, err := url.Parse(c.Catalog.APIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("catalog.api_base must be a valid URL, got %q", c.Catalog.APIBase)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive")
	}
	// Credentials are optional (the server runs in mock mode without them),
	// but a key without a secret is a misconfiguration.
	if (c.Catalog.APIKey == "") != (c.Catalog.APISecret == "") {
		return fmt.Errorf("catalog.api_key and catalog.api_secret must be set together")
	}

	switch c.Auth.Type {
	case "", "none":
	case "apikey":
		if len(c.Auth.APIKeys) == 0 {
			return fmt.Errorf("auth.type is apikey but no api_keys are configured")
		}
		for i, k := range c.Auth.APIKeys {
			if k.Key == "" {
				return fmt.Errorf("auth.api_keys[%d] has no key", i)
			}
		}
	case "jwt":
		if c.Auth.JWT.Secret == "" {
			return fmt.Errorf("auth.type is jwt but no jwt.secret is configured")
		}
	default:
		return fmt.Errorf("auth.type must be one of none, apikey, jwt; got %q", c.Auth.Type)
	}

	if c.Observability.Metrics.Enabled && c.Observability.Metrics.Path == "" {
		return fmt.Errorf("observability.metrics.path must not be empty when metrics are enabled")
	}

	return nil
}
