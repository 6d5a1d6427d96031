package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Contains(t, c.DatabaseDSN, "gophinbox.db")
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, SessionBackendSQL, c.SessionBackend)
	assert.Equal(t, "127.0.0.1:6379", c.ValkeyAddr)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 32, c.MaxNameLength)
	assert.Equal(t, 200, c.MaxSubjectLength)
	assert.Equal(t, 1000, c.MaxBodyLength)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", "does-not-exist.env"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"endpoint_addr_http": ":7000",
		"database_dsn":       "from-json",
		"secret_key":         "json-secret",
	})
	t.Setenv("INBOX_DATABASE_DSN", "from-env")
	t.Setenv("INBOX_SECRET_KEY", "env-secret")

	os.Args = []string{"testbin", "-env", dir + "/none.env", "-c", jsonPath, "-s", "flag-secret"}

	c := LoadConfig()

	assert.Equal(t, ":7000", c.EndpointAddrHTTP, "json over defaults")
	assert.Equal(t, "from-env", c.DatabaseDSN, "env over json")
	assert.Equal(t, "flag-secret", c.SecretKey, "flags over env")
}
