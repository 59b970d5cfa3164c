package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalert/petalert/internal/config"
	"github.com/petalert/petalert/internal/infra/cache"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestServeRequiresConfig(t *testing.T) {
	rootCmd.SetArgs([]string{"serve", "--config", t.TempDir() + "/missing.yaml"})
	assert.Error(t, rootCmd.Execute())
}

func TestListCacheFallsBackToLocal(t *testing.T) {
	conf := config.Default()
	assert.IsType(t, &cache.Local{}, listCache(conf))

	conf.Upstream.MemcachedAddr = "127.0.0.1:1"
	assert.IsType(t, &cache.Local{}, listCache(conf))
}
