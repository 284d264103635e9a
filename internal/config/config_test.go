package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "localhost:6379")

	dataDir := t.TempDir()
	path := writeConfig(t, `
server:
  port: 9000
database:
  path: `+filepath.Join(dataDir, "app.db")+`
redis:
  address: "${TEST_REDIS_ADDR}"
  cache_ttl_seconds: 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 120, cfg.Redis.CacheTTLSeconds)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
backup:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/studydesk.db", cfg.Database.Path)
	assert.True(t, cfg.Backup.Enabled)

	perSec, burst := cfg.GenerateRate()
	assert.InDelta(t, 0.5, perSec, 0.001)
	assert.Equal(t, 3, burst)

	windows := cfg.StudyWindows()
	assert.Empty(t, windows.Weekday.Start)
}

func TestLoadStudyWindows(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, `
database:
  path: `+filepath.Join(dataDir, "app.db")+`
planner:
  weekday_window_start: "08:00"
  weekday_window_end: "21:00"
  weekend_window_start: "11:00"
  weekend_window_end: "19:00"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	windows := cfg.StudyWindows()
	assert.Equal(t, "08:00", windows.Weekday.Start)
	assert.Equal(t, "21:00", windows.Weekday.End)
	assert.Equal(t, "11:00", windows.Weekend.Start)
	assert.Equal(t, "19:00", windows.Weekend.End)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
