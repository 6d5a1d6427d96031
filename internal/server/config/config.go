// Package config handles configuration for the server component: defaults,
// an optional .env file, a JSON overlay, INBOX_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"time"
)

// Config holds runtime settings for the inbox server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - DatabaseDriver / DatabaseDSN: "pgx" (PostgreSQL) or "sqlite" plus its DSN.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use the default in prod.
//   - SessionValidityDuration: lifetime of a login session and its token.
//   - SessionBackend: "sql" keeps sessions in the database, "valkey" in ValkeyAddr.
//   - LogLevel / LogFormat: slog level name and "json" or "text".
//   - MaxNameLength / MaxSubjectLength / MaxBodyLength: input bounds.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP        string
	EndpointAddrGRPC        string
	DatabaseDriver          string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	SessionBackend          string
	ValkeyAddr              string
	LogLevel                string
	LogFormat               string
	MaxNameLength           int
	MaxSubjectLength        int
	MaxBodyLength           int
	ShutdownTimeout         time.Duration
}

const (
	SessionBackendSQL    = "sql"
	SessionBackendValkey = "valkey"
)

// LoadDefaults populates Config with development defaults: a local SQLite
// file and SQL-backed sessions.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:gophinbox.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.SessionBackend = SessionBackendSQL
	c.ValkeyAddr = "127.0.0.1:6379"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.MaxNameLength = 32
	c.MaxSubjectLength = 200
	c.MaxBodyLength = 1000
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (after loading .env) and
// finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadEnvFile()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
