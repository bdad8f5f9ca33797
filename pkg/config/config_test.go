package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTunables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"maxSessions: 5\nredisPoolSize: 3\nredisMaxRetries: 1\n",
	), 0o644))

	tunables := Limits
	require.NoError(t, loadTunables(path, &tunables))

	assert.Equal(t, 5, tunables.MaxSessions)
	assert.Equal(t, 3, tunables.RedisPoolSize)
	assert.Equal(t, 1, tunables.RedisMaxRetries)
	// Unset keys keep their defaults.
	assert.Equal(t, 100, tunables.MessageHistoryLimit)
	assert.Equal(t, 5, tunables.RedisMinIdleConns)
}

func TestLoadTunablesMissingFile(t *testing.T) {
	tunables := Limits
	assert.Error(t, loadTunables(filepath.Join(t.TempDir(), "absent.yaml"), &tunables))
}
