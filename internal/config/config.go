// Package config loads user configuration with Viper: built-in
// defaults, then an optional config.yaml in the data directory, then
// PPP_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything tunable about the app.
type Config struct {
	DataDir string
	Theme   ThemeConfig
	Editor  EditorConfig
	Logger  LoggerConfig
}

type ThemeConfig struct {
	Name    string // classic | neon | mono
	NoColor bool
}

type EditorConfig struct {
	AutosaveDelay time.Duration
	// When true the TUI asks before a benefit change throws away the
	// current checklist. The silent replace is the historical behavior,
	// so this defaults to off.
	ConfirmBenefitReplace bool
}

type LoggerConfig struct {
	Level    string
	Encoding string // console | json
}

// DefaultDataDir is ~/.ppp. Falls back to the working directory when
// the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ppp"
	}
	return filepath.Join(home, ".ppp")
}

// Load reads config.yaml from dataDir (optional) plus PPP_* env vars.
// An empty dataDir means the default location.
func Load(dataDir string) (*Config, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)

	v.SetEnvPrefix("PPP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.DataDir = dataDir
	cfg.Theme.Name = v.GetString("theme.name")
	cfg.Theme.NoColor = v.GetBool("theme.no_color")
	cfg.Editor.AutosaveDelay = v.GetDuration("editor.autosave_delay")
	cfg.Editor.ConfirmBenefitReplace = v.GetBool("editor.confirm_benefit_replace")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Encoding = v.GetString("logger.encoding")

	if cfg.Editor.AutosaveDelay <= 0 {
		cfg.Editor.AutosaveDelay = 2 * time.Second
	}
	return cfg, nil
}

// CasesPath is where the store keeps the case collection.
func (c *Config) CasesPath() string {
	return filepath.Join(c.DataDir, "cases.json")
}

// LogPath is where the logger writes.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "ppp.log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme.name", "classic")
	v.SetDefault("theme.no_color", false)
	v.SetDefault("editor.autosave_delay", "2s")
	v.SetDefault("editor.confirm_benefit_replace", false)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
}
