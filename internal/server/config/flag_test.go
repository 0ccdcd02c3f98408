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

	tests := []struct {
		name        string
		args        []string
		start       Config
		expected    Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:8081", "-g", "127.0.0.1:9090", "-d", "postgres://db", "-s", "secret",
				"-t", "60", "-r", "5", "-m", "1024", "-secure-cookie", "-hide-foreign",
			},
			expected: Config{
				EndpointAddrHTTP:      "127.0.0.1:8081",
				EndpointAddrGRPC:      "127.0.0.1:9090",
				DatabaseDSN:           "postgres://db",
				SecretKey:             "secret",
				TokenValidityDuration: time.Hour,
				CookieSecure:          true,
				HideForeignRecords:    true,
				LoginRatePerMinute:    5,
				MaxBodyBytes:          1024,
			},
		},
		{
			name:     "foreign flags ignored and sub-minute validity kept",
			args:     []string{"cmd", "adduser", "-email", "a@x.com", "-s", "k"},
			start:    Config{TokenValidityDuration: 30 * time.Second, MaxBodyBytes: 10},
			expected: Config{SecretKey: "k", TokenValidityDuration: 30 * time.Second, MaxBodyBytes: 10},
		},
		{
			name:        "bad int panics",
			args:        []string{"cmd", "-t", "week"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := tt.start

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
