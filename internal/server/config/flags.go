package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-t string   database driver: pgx or sqlite
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-v int      session validity, minutes
//	-b string   session backend: sql or valkey
//	-k string   Valkey address
//	-l string   log level
//	-f string   log format: json or text
//
// Args are filtered with flagx.FilterArgs first so -c and -env, handled
// elsewhere, do not trip this flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-t", "-d", "-s", "-v", "-b", "-k", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve HTTP on")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC health on")
	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidityDuration := fs.Int("v", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")

	fs.StringVar(&config.SessionBackend, "b", config.SessionBackend, "session backend (sql|valkey)")
	fs.StringVar(&config.ValkeyAddr, "k", config.ValkeyAddr, "valkey address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json|text)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -v replaces the value, so sub-minute settings from
	// JSON or the environment survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "v" {
			config.SessionValidityDuration = time.Duration(*sessionValidityDuration) * time.Minute
		}
	})
}
