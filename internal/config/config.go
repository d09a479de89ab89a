// Package config loads service configuration from the environment, with an
// optional YAML file underneath. Environment variables always win.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contains all settings for the agreement service
type Config struct {
	// Addr is the HTTP listen address
	Addr string `yaml:"addr"`
	// TemplatePath points at the base agreement template; empty means the
	// built-in template
	TemplatePath string `yaml:"template"`
	// PreparerName and PreparerEmail fill the "Prepared By" section when
	// the form leaves those fields empty
	PreparerName  string `yaml:"preparer_name"`
	PreparerEmail string `yaml:"preparer_email"`
	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Addr:          ":8080",
		PreparerName:  "Kevin Fuller",
		PreparerEmail: "k.fuller@avatarmsp.com",
		LogLevel:      "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then environment variables on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setEnv(&c.Addr, "MSAGEN_ADDR")
	setEnv(&c.TemplatePath, "MSAGEN_TEMPLATE")
	setEnv(&c.PreparerName, "MSAGEN_PREPARER_NAME")
	setEnv(&c.PreparerEmail, "MSAGEN_PREPARER_EMAIL")
	setEnv(&c.LogLevel, "MSAGEN_LOG_LEVEL")
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
