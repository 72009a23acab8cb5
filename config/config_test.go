package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("CASINO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, Load())
	assert.Equal(t, ":8080", C.Server.Port)
	assert.Equal(t, "memory", C.Store.Backend)
	assert.Equal(t, 300, C.Casino.LatencyMs)
	assert.Equal(t, 1000.0, C.Casino.StartingChips)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casino.yaml")
	yaml := "server:\n  port: \":9999\"\ncasino:\n  latencyMs: 0\n  seed: 42\nstore:\n  backend: postgres\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CASINO_CONFIG", path)
	t.Setenv("CASINO_STORE_BACKEND", "redis")
	t.Setenv("CASINO_JWT_SECRET", "s3cret")

	require.NoError(t, Load())
	assert.Equal(t, ":9999", C.Server.Port)
	assert.Equal(t, 0, C.Casino.LatencyMs)
	assert.Equal(t, int64(42), C.Casino.Seed)
	assert.Equal(t, "redis", C.Store.Backend, "env wins over file")
	assert.Equal(t, "s3cret", C.JWT.Secret)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o600))
	t.Setenv("CASINO_CONFIG", path)

	assert.Error(t, Load())
}
