package petlookup

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint = "http://127.0.0.1:8000"
	DefaultTimeout  = 10 * time.Second
)

// Config holds connection and logging configuration
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	LogFile  string        `yaml:"log_file"`
	LogLevel string        `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Timeout:  DefaultTimeout,
		LogLevel: "info",
	}
}

// LoadConfig reads configuration from a YAML file.
// An empty path yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields that have no usable fallback
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("config missing required field: endpoint")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config field endpoint is not an absolute URL: %q", c.Endpoint)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config field timeout must not be negative")
	}
	return nil
}
