package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "data/messages.json", cfg.HistoryFile)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 50, cfg.ReplayLimit)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("HISTORY_FILE", "/tmp/history.json")
	t.Setenv("REPLAY_LIMIT", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "/tmp/history.json", cfg.HistoryFile)
	assert.Equal(t, 25, cfg.ReplayLimit)
}

func TestLoadRejectsMalformedInt(t *testing.T) {
	t.Setenv("REPLAY_LIMIT", "lots")

	_, err := Load()
	require.Error(t, err)
}
