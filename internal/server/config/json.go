package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/drawgallery/internal/flagx"
	"github.com/dmitrijs2005/drawgallery/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Pointer fields distinguish
// "absent" from the zero value, so a file only overrides what it sets.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	CookieSecure          *bool           `json:"cookie_secure"`
	HideForeignRecords    *bool           `json:"hide_foreign_records"`
	LoginRatePerMinute    *int            `json:"login_rate_per_minute"`
	MaxBodyBytes          *int64          `json:"max_body_bytes"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// A missing or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.CookieSecure, c.CookieSecure)
	setIf(&config.HideForeignRecords, c.HideForeignRecords)
	setIf(&config.LoginRatePerMinute, c.LoginRatePerMinute)
	setIf(&config.MaxBodyBytes, c.MaxBodyBytes)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
