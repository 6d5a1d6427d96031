package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophinbox/internal/flagx"
	"github.com/dmitrijs2005/gophinbox/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Duration fields use timex.Duration so both "90s" and integer nanoseconds
// are accepted. Fields absent from the file keep their previous values.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        string         `json:"endpoint_addr_grpc"`
	DatabaseDriver          string         `json:"database_driver"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	SessionBackend          string         `json:"session_backend"`
	ValkeyAddr              string         `json:"valkey_addr"`
	LogLevel                string         `json:"log_level"`
	LogFormat               string         `json:"log_format"`
	MaxNameLength           int            `json:"max_name_length"`
	MaxSubjectLength        int            `json:"max_subject_length"`
	MaxBodyLength           int            `json:"max_body_length"`
	ShutdownTimeout         timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config. Without either flag nothing is loaded. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.SessionBackend, c.SessionBackend)
	setString(&config.ValkeyAddr, c.ValkeyAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setInt(&config.MaxNameLength, c.MaxNameLength)
	setInt(&config.MaxSubjectLength, c.MaxSubjectLength)
	setInt(&config.MaxBodyLength, c.MaxBodyLength)

	if c.SessionValidityDuration.Duration > 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
