package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9000"
  logLevel: debug
  timezone: Asia/Tokyo
upstream:
  baseURL: https://api.petalert.example
  listCacheTTL: 5s
  memcachedAddr: memcached:11211
telemetry:
  enableTrace: true
  traceEndpoint: otel:4318
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", conf.Server.Listen)
	assert.Equal(t, slog.LevelDebug, conf.SlogLevel())
	assert.Equal(t, "https://api.petalert.example", conf.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, conf.Upstream.ListCacheTTL)
	assert.Equal(t, "memcached:11211", conf.Upstream.MemcachedAddr)

	// untouched keys keep their defaults
	assert.Equal(t, 10*time.Second, conf.Upstream.Timeout)
	assert.Equal(t, 30*time.Minute, conf.Session.IdleTTL)
	assert.Equal(t, "petalert", conf.Telemetry.ServiceName)

	loc, err := conf.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  listen: \":9000\"\n"))
	assert.ErrorContains(t, err, "baseURL")

	_, err = Load(writeConfig(t, "upstream:\n  baseURL: ftp://x\n"))
	assert.ErrorContains(t, err, "http(s)")

	_, err = Load(writeConfig(t, "upstream:\n  baseURL: http://x\nserver:\n  timezone: Mars/Olympus\n"))
	assert.ErrorContains(t, err, "timezone")

	_, err = Load(writeConfig(t, "upstream:\n  baseURL: http://x\ntelemetry:\n  enableTrace: true\n"))
	assert.ErrorContains(t, err, "traceEndpoint")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
