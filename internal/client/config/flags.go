package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/flagx"
)

// ValueFlags lists the client flags that consume a value. The CLI uses it to
// separate flags from the positional command.
var ValueFlags = []string{"-s", "-t", "-w", "-c", "-config", "-env"}

// parseFlags populates selected Config fields from command-line flags.
//
//	-s string   base URL of the inbox server
//	-t string   session token file
//	-w int      request timeout in seconds
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the inbox server")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "session token file")
	timeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
