package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/gophinbox/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. INBOX_DATABASE_DSN.
const EnvPrefix = "INBOX"

// loadEnvFile copies variables from the .env file (or the one named by -env)
// into the process environment. Variables already set are not overridden and
// a missing file is ignored; a malformed one panics.
func loadEnvFile() {
	path := flagx.EnvFileFlags()
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays INBOX_* environment variables onto config.
func parseEnv(config *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	stringKeys := map[string]*string{
		"endpoint_addr_http": &config.EndpointAddrHTTP,
		"endpoint_addr_grpc": &config.EndpointAddrGRPC,
		"database_driver":    &config.DatabaseDriver,
		"database_dsn":       &config.DatabaseDSN,
		"secret_key":         &config.SecretKey,
		"session_backend":    &config.SessionBackend,
		"valkey_addr":        &config.ValkeyAddr,
		"log_level":          &config.LogLevel,
		"log_format":         &config.LogFormat,
	}
	intKeys := map[string]*int{
		"max_name_length":    &config.MaxNameLength,
		"max_subject_length": &config.MaxSubjectLength,
		"max_body_length":    &config.MaxBodyLength,
	}

	for key, dst := range stringKeys {
		_ = v.BindEnv(key)
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	for key, dst := range intKeys {
		_ = v.BindEnv(key)
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	_ = v.BindEnv("session_validity_duration")
	if v.IsSet("session_validity_duration") {
		config.SessionValidityDuration = v.GetDuration("session_validity_duration")
	}
	_ = v.BindEnv("shutdown_timeout")
	if v.IsSet("shutdown_timeout") {
		config.ShutdownTimeout = v.GetDuration("shutdown_timeout")
	}
}
