package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/previdlabs/ppp/internal/config"
)

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "classic", cfg.Theme.Name)
	assert.False(t, cfg.Theme.NoColor)
	assert.Equal(t, 2*time.Second, cfg.Editor.AutosaveDelay)
	assert.False(t, cfg.Editor.ConfirmBenefitReplace)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, filepath.Join(dir, "cases.json"), cfg.CasesPath())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
theme:
  name: neon
editor:
  autosave_delay: 500ms
  confirm_benefit_replace: true
logger:
  level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme.Name)
	assert.Equal(t, 500*time.Millisecond, cfg.Editor.AutosaveDelay)
	assert.True(t, cfg.Editor.ConfirmBenefitReplace)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PPP_THEME_NAME", "mono")
	t.Setenv("PPP_LOGGER_LEVEL", "error")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme.Name)
	assert.Equal(t, "error", cfg.Logger.Level)
}

func TestBrokenConfigFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{{nope"), 0o644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestNonPositiveDelayFallsBack(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("editor:\n  autosave_delay: 0s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Editor.AutosaveDelay)
}
