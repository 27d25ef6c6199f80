package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure values from the developer's environment don't leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		HostEnvVar, PortEnvVar, BooksAPIURLEnvVar, BooksAPITimeoutSecEnvVar,
		TelemetryEnabledEnvVar, LogLevelEnvVar, LogFormatEnvVar,
	} {
		t.Setenv(v, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "0.0.0.0:8080", c.Addr())
	assert.Equal(t, 30*time.Second, c.BooksAPITimeout())
	assert.NoError(t, c.Validate())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/booksmcp.yaml", []byte(`
host: 127.0.0.1
port: 9090
books_api:
  url: http://books:5288
telemetry:
  enabled: true
`), 0o644))

	c, err := Load(fs, "/etc/booksmcp.yaml")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", c.Host)
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, "http://books:5288", c.BooksAPI.URL)
	// keys absent from the file keep their defaults
	assert.Equal(t, BooksAPITimeoutSecDefault, c.BooksAPI.TimeoutSec)
	assert.True(t, c.Telemetry.Enabled)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("port: [1, 2"), 0o644))
	_, err = Load(fs, "/bad.yaml")
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("port: 9090\nhost: 127.0.0.1\n"), 0o644))

	t.Setenv(HostEnvVar, "localhost")
	t.Setenv(PortEnvVar, "7000")
	t.Setenv(BooksAPIURLEnvVar, "https://books.example.com")
	t.Setenv(BooksAPITimeoutSecEnvVar, "5")
	t.Setenv(TelemetryEnabledEnvVar, "TRUE")
	t.Setenv(LogLevelEnvVar, "DEBUG")
	t.Setenv(LogFormatEnvVar, "json")

	c, err := Load(fs, "/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 7000, c.Port)
	assert.Equal(t, "https://books.example.com", c.BooksAPI.URL)
	assert.Equal(t, 5*time.Second, c.BooksAPITimeout())
	assert.True(t, c.Telemetry.Enabled)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
}

func TestLoadInvalidPortFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv(PortEnvVar, "eighty")

	c, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, PortDefault, c.Port)
}

func TestLoadInvalidPortKeepsFilePort(t *testing.T) {
	clearEnv(t)
	t.Setenv(PortEnvVar, "eighty")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("port: 9090\n"), 0o644))

	c, err := Load(fs, "/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Port)
}

func TestLoadInvalidEnv(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"timeout not a number", BooksAPITimeoutSecEnvVar, "soon"},
		{"timeout zero", BooksAPITimeoutSecEnvVar, "0"},
		{"telemetry", TelemetryEnabledEnvVar, "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.envVar, tt.value)

			_, err := Load(afero.NewMemMapFs(), "")
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https url", func(c *Config) { c.BooksAPI.URL = "https://books.example.com/api" }, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"empty url", func(c *Config) { c.BooksAPI.URL = "" }, true},
		{"relative url", func(c *Config) { c.BooksAPI.URL = "books:5288" }, true},
		{"ftp url", func(c *Config) { c.BooksAPI.URL = "ftp://books" }, true},
		{"zero timeout", func(c *Config) { c.BooksAPI.TimeoutSec = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
