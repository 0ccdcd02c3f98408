package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/flagx"
)

// serverFlags lists the flags parseFlags understands; everything else in
// os.Args is left to other components (e.g. the admin subcommands).
var serverFlags = []string{"-a", "-g", "-d", "-s", "-t", "-r", "-m", "-secure-cookie", "-hide-foreign"}

// parseFlags populates config from command-line flags.
//
// Supported flags:
//
//	-a string       HTTP bind address (e.g. ":8080")
//	-g string       gRPC bind address (e.g. ":50051")
//	-d string       database DSN
//	-s string       token signing secret
//	-t int          token validity, minutes
//	-r int          login attempts per minute, 0 disables limiting
//	-m int          max HTTP body size, bytes
//	-secure-cookie  mark the session cookie Secure
//	-hide-foreign   report foreign drawings as not found
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity duration (in minutes)")

	fs.IntVar(&config.LoginRatePerMinute, "r", config.LoginRatePerMinute, "login attempts per minute")
	fs.Int64Var(&config.MaxBodyBytes, "m", config.MaxBodyBytes, "max request body size in bytes")
	fs.BoolVar(&config.CookieSecure, "secure-cookie", config.CookieSecure, "set Secure on the session cookie")
	fs.BoolVar(&config.HideForeignRecords, "hide-foreign", config.HideForeignRecords, "report foreign drawings as not found")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides earlier layers when given explicitly, so a sub-minute
	// validity from JSON or the environment survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
