package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without a config file the defaults must be enough to boot a dev instance.
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "workout_log.db", cfg.Database.DSN)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.True(t, cfg.S3.UseSSL)
}
