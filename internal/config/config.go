package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Host    HostConfig     `mapstructure:"host"`
	Flags   map[string]any `mapstructure:"flags"`
	Journal JournalConfig  `mapstructure:"journal"`
	Log     LogConfig      `mapstructure:"log"`
}

// HostConfig describes the simulated document.
type HostConfig struct {
	Title string `mapstructure:"title"`
}

// JournalConfig holds sqlite settings.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds logging settings. Verbosity 0 logs errors and warnings
// only; each step adds a level.
type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	Path      string `mapstructure:"path"`
}

// Path returns the config file location. PORTBRIDGE_CONFIG overrides the
// default under the user config directory.
func Path() string {
	if p := os.Getenv("PORTBRIDGE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "portbridge", "config.toml")
}

func defaults(v *viper.Viper) {
	v.SetDefault("host.title", "Hello")
	v.SetDefault("flags", map[string]any{})
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "portbridge", "journal.db"))
	v.SetDefault("log.verbosity", 1)
	v.SetDefault("log.path", "")
}

// Load reads configuration from file and env. Env var overrides use prefix PORTBRIDGE_.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("PORTBRIDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Flags == nil {
		c.Flags = map[string]any{}
	}
	return c, nil
}

// Default returns the built-in configuration.
func Default() (Config, error) {
	v := viper.New()
	defaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal defaults: %w", err)
	}
	if c.Flags == nil {
		c.Flags = map[string]any{}
	}
	return c, nil
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("host.title", cfg.Host.Title)
	v.Set("flags", cfg.Flags)
	v.Set("journal.enabled", cfg.Journal.Enabled)
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("log.verbosity", cfg.Log.Verbosity)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
