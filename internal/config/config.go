package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A double underscore separates nesting
// levels: PASSBOT_GATEWAY__API_KEY -> gateway.api_key.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables.
	if err := k.Load(env.Provider("PASSBOT_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "PASSBOT_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. Gateway
// credentials are the only hard requirement: without them every inbound
// delivery would fail wholesale.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway.base_url is required")
	}
	if c.Gateway.APIKey == "" {
		return fmt.Errorf("gateway.api_key is required")
	}
	if c.Gateway.PhoneNumberID == "" {
		return fmt.Errorf("gateway.phone_number_id is required")
	}

	if c.Mail.APIKey != "" {
		if c.Mail.Endpoint == "" {
			return fmt.Errorf("mail.endpoint is required when mail.api_key is set")
		}
		if c.Mail.FromEmail == "" {
			return fmt.Errorf("mail.from_email is required when mail.api_key is set")
		}
	}

	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}

	return nil
}
