package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "file:gallery.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 7*24*time.Hour, c.TokenValidityDuration)
	assert.False(t, c.CookieSecure)
	assert.False(t, c.HideForeignRecords)
	assert.Equal(t, 30, c.LoginRatePerMinute)
	assert.Equal(t, int64(10<<20), c.MaxBodyBytes)
}

func TestLoadConfig_AppliesLayers(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv(EnvHTTPAddr, ":9999")
	os.Args = []string{"server", "-g", ":7000"}

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, ":9999", c.EndpointAddrHTTP)
	assert.Equal(t, ":7000", c.EndpointAddrGRPC)
	assert.Equal(t, 7*24*time.Hour, c.TokenValidityDuration)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LoadDefaults()
		c.SecretKey = "s3cret"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "secret key is not set"},
		{name: "missing dsn", mutate: func(c *Config) { c.DatabaseDSN = "" }, wantErr: "database dsn is not set"},
		{name: "zero validity", mutate: func(c *Config) { c.TokenValidityDuration = 0 }, wantErr: "token validity duration must be positive"},
		{name: "zero body", mutate: func(c *Config) { c.MaxBodyBytes = 0 }, wantErr: "max body bytes must be positive"},
		{name: "negative rate", mutate: func(c *Config) { c.LoginRatePerMinute = -1 }, wantErr: "login rate must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
