package storefront

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML decoding. Durations are strings in
// time.ParseDuration form ("30s", "1m"); the signing key is a plain string.
type fileConfig struct {
	RateLimit struct {
		MaxRequests int    `yaml:"max_requests"`
		Window      string `yaml:"window"`
	} `yaml:"rate_limit"`
	Login struct {
		MinPasswordLength int `yaml:"min_password_length"`
	} `yaml:"login"`
	Register struct {
		DisplayNameMin int `yaml:"display_name_min"`
		DisplayNameMax int `yaml:"display_name_max"`
	} `yaml:"register"`
	Session struct {
		StorageKey string `yaml:"storage_key"`
		SigningKey string `yaml:"signing_key"`
	} `yaml:"session"`
	Cart struct {
		StorageKey string `yaml:"storage_key"`
	} `yaml:"cart"`
	Audit struct {
		Enabled    bool `yaml:"enabled"`
		BufferSize int  `yaml:"buffer_size"`
		DropIfFull bool `yaml:"drop_if_full"`
	} `yaml:"audit"`
	Metrics struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// LoadConfig reads a YAML file and overlays it on the default configuration.
// Absent fields keep their defaults, so a minimal file tunes one knob
// without restating the rest.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.RateLimit.MaxRequests > 0 {
		cfg.RateLimit.MaxRequests = fc.RateLimit.MaxRequests
	}
	if fc.RateLimit.Window != "" {
		window, err := time.ParseDuration(fc.RateLimit.Window)
		if err != nil {
			return Config{}, fmt.Errorf("config: rate_limit.window: %w", err)
		}
		cfg.RateLimit.Window = window
	}
	if fc.Login.MinPasswordLength > 0 {
		cfg.Login.MinPasswordLength = fc.Login.MinPasswordLength
	}
	if fc.Register.DisplayNameMin > 0 {
		cfg.Register.DisplayNameMin = fc.Register.DisplayNameMin
	}
	if fc.Register.DisplayNameMax > 0 {
		cfg.Register.DisplayNameMax = fc.Register.DisplayNameMax
	}
	if fc.Session.StorageKey != "" {
		cfg.Session.StorageKey = fc.Session.StorageKey
	}
	if fc.Session.SigningKey != "" {
		cfg.Session.SigningKey = []byte(fc.Session.SigningKey)
	}
	if fc.Cart.StorageKey != "" {
		cfg.Cart.StorageKey = fc.Cart.StorageKey
	}
	cfg.Audit.Enabled = fc.Audit.Enabled
	if fc.Audit.BufferSize > 0 {
		cfg.Audit.BufferSize = fc.Audit.BufferSize
	}
	if fc.Audit.Enabled {
		cfg.Audit.DropIfFull = fc.Audit.DropIfFull
	}
	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}
