package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "debug")
	require.NoError(t, err)

	log.Info("appointment created id=%s", "abc")
	log.Warn("slot taken date=%s", "2024-12-21")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "appointment created id=abc")
	assert.Contains(t, string(data), "slot taken date=2024-12-21")
}

func TestNew_LevelFiltersLowerEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "warn")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("visible")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}
