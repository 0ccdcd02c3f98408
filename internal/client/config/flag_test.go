package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "127.0.0.1:9090", "-t", "5", "-i", "10"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", RequestTimeout: 5 * time.Second, OnlineCheckInterval: 10 * time.Second}},
		{name: "only address keeps durations", args: []string{"cmd", "-a=host:1"},
			expected: &Config{ServerEndpointAddr: "host:1", RequestTimeout: 10 * time.Second, OnlineCheckInterval: 3 * time.Second}},
		{name: "unknown flags are ignored", args: []string{"cmd", "-x", "1", "-i", "7"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:50051", RequestTimeout: 10 * time.Second, OnlineCheckInterval: 7 * time.Second}},
		{name: "incorrect check interval", args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "abc"}, expectPanic: true},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := defaults()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
