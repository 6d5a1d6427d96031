package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the inbox CLI.
//
// Fields:
//   - ServerURL: base URL of the inbox REST API.
//   - TokenFile: where the session token is kept between invocations.
//   - RequestTimeout: per-request deadline.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
}

// DefaultTokenFileName is created in the user's home directory.
const DefaultTokenFileName = ".gophinbox_token"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultTokenFileName
	}
	return filepath.Join(home, DefaultTokenFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
