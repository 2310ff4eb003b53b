package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/sickday/internal/analytics"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, analytics.DefaultWindows, cfg.Windows())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/health.db
color: false
analysis:
  baseline_days: 90
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/health.db", cfg.DBPath)
	assert.False(t, cfg.Color)
	assert.Equal(t, 90, cfg.Analysis.BaselineDays)
	assert.Equal(t, analytics.DefaultPreWindowDays, cfg.Analysis.PreWindowDays)
	assert.Equal(t, analytics.DefaultSummaryDays, cfg.Analysis.SummaryDays)
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "analysis: [not, a, map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadWindows(t *testing.T) {
	path := writeConfig(t, "analysis:\n  pre_window_days: 0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pre_window_days")
}

func TestResolveDBPathPrecedence(t *testing.T) {
	cfg := Default()
	cfg.DBPath = "/from/config.db"

	t.Setenv("SICKDAY_DB", "")
	assert.Equal(t, "/from/flag.db", cfg.ResolveDBPath("/from/flag.db"))
	assert.Equal(t, "/from/config.db", cfg.ResolveDBPath(""))

	t.Setenv("SICKDAY_DB", "/from/env.db")
	assert.Equal(t, "/from/env.db", cfg.ResolveDBPath(""))

	t.Setenv("SICKDAY_DB", "")
	assert.Equal(t, filepath.Join(Dir(), "sickday.db"), Default().ResolveDBPath(""))
}

func TestLoadEnvKeepsExistingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SICKDAY_DB=/tmp/from-dotenv.db\nSICKDAY_TEST_ONLY=yes\n"), 0o644))

	t.Setenv("SICKDAY_DB", "/tmp/from-env.db")
	t.Setenv("SICKDAY_TEST_ONLY", "")
	os.Unsetenv("SICKDAY_TEST_ONLY")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "/tmp/from-env.db", os.Getenv("SICKDAY_DB"))
	assert.Equal(t, "yes", os.Getenv("SICKDAY_TEST_ONLY"))
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "nope.env")))
}
