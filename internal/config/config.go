// Package config resolves the booksmcp server configuration from defaults, an optional YAML file
// and environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	HostEnvVar  = "MCP_SERVER_HOST"
	HostDefault = "0.0.0.0"

	PortEnvVar  = "MCP_SERVER_PORT"
	PortDefault = 8080

	BooksAPIURLEnvVar  = "BOOKS_API_URL"
	BooksAPIURLDefault = "http://localhost:5288"

	// BooksAPITimeoutSecEnvVar bounds every request sent to the Books API.
	BooksAPITimeoutSecEnvVar  = "BOOKS_API_TIMEOUT_SEC"
	BooksAPITimeoutSecDefault = 30

	TelemetryEnabledEnvVar = "OTEL_ENABLED"

	LogLevelEnvVar  = "LOG_LEVEL"
	LogFormatEnvVar = "LOG_FORMAT"

	// ConfigFileEnvVar points to a YAML config file, used when no --config flag is given.
	ConfigFileEnvVar = "BOOKSMCP_CONFIG"
)

type BooksAPIConfig struct {
	URL        string `yaml:"url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the complete server configuration.
type Config struct {
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port"`
	BooksAPI  BooksAPIConfig  `yaml:"books_api"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Host: HostDefault,
		Port: PortDefault,
		BooksAPI: BooksAPIConfig{
			URL:        BooksAPIURLDefault,
			TimeoutSec: BooksAPITimeoutSecDefault,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration.
// precedence: environment variables > config file at path > defaults
// path may be empty, in which case only defaults and the environment are used.
func Load(fs afero.Fs, path string) (*Config, error) {
	c := Default()

	if path != "" {
		if err := c.loadFile(fs, path); err != nil {
			return nil, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) loadFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(HostEnvVar)); v != "" {
		c.Host = v
	}

	// an unusable port is not fatal, the port from the config file (or the default) is kept
	if v := strings.TrimSpace(os.Getenv(PortEnvVar)); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}

	if v := strings.TrimSpace(os.Getenv(BooksAPIURLEnvVar)); v != "" {
		c.BooksAPI.URL = v
	}

	if v := strings.TrimSpace(os.Getenv(BooksAPITimeoutSecEnvVar)); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil || timeout < 1 {
			return fmt.Errorf(
				"invalid value for %s: '%s', must be a positive integer", BooksAPITimeoutSecEnvVar, v,
			)
		}
		c.BooksAPI.TimeoutSec = timeout
	}

	if v := strings.TrimSpace(os.Getenv(TelemetryEnabledEnvVar)); v != "" {
		switch strings.ToLower(v) {
		case "true", "1":
			c.Telemetry.Enabled = true
		case "false", "0":
			c.Telemetry.Enabled = false
		default:
			return fmt.Errorf(
				"invalid value for %s environment variable: '%s', valid values are 'true' or 'false'",
				TelemetryEnabledEnvVar, v,
			)
		}
	}

	if v := strings.TrimSpace(os.Getenv(LogLevelEnvVar)); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(LogFormatEnvVar)); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	return nil
}

// Validate reports the first problem that would prevent the server from starting.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, must be between 1 and 65535", c.Port)
	}

	u, err := url.Parse(c.BooksAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid books api url '%s': %w", c.BooksAPI.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid books api url '%s', must be an absolute http(s) url", c.BooksAPI.URL)
	}

	if c.BooksAPI.TimeoutSec < 1 {
		return fmt.Errorf("invalid books api timeout %d, must be a positive number of seconds", c.BooksAPI.TimeoutSec)
	}
	return nil
}

// Addr returns the host:port address the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BooksAPITimeout returns the per-request timeout for the Books API.
func (c *Config) BooksAPITimeout() time.Duration {
	return time.Duration(c.BooksAPI.TimeoutSec) * time.Second
}
