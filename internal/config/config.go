// Package config loads the acdrive configuration file. Everything has a
// working default; the file only exists to override host-application
// names, timeouts, and the history store location.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration.
type Config struct {
	// App is the host application driven through the accessibility tree.
	App string `toml:"app"`
	// DeviceWindows are the recognized titles of the device-list views.
	DeviceWindows []string `toml:"device_windows"`
	// LaunchTimeoutSec bounds the launch-readiness wait.
	LaunchTimeoutSec int `toml:"launch_timeout_sec"`
	// PromptTimeoutSec bounds every wait for a prompt or table.
	PromptTimeoutSec int `toml:"prompt_timeout_sec"`
	// PollIntervalSec is the fixed re-check interval for all waits.
	PollIntervalSec int `toml:"poll_interval_sec"`

	History HistoryConfig `toml:"history"`
}

// HistoryConfig controls the execution-record store.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		App:              "Apple Configurator 2",
		DeviceWindows:    []string{"All Devices", "Supervised", "Unsupervised", "Recovery"},
		LaunchTimeoutSec: 60,
		PromptTimeoutSec: 30,
		PollIntervalSec:  1,
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(configDir(), "history.db"),
		},
	}
}

// Path returns the config file location: $ACDRIVE_CONFIG when set,
// otherwise ~/.config/acdrive/config.toml.
func Path() string {
	if p := os.Getenv("ACDRIVE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "acdrive")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".acdrive"
	}
	return filepath.Join(home, ".config", "acdrive")
}

// Load reads the config file, falling back to defaults when it does not
// exist. Unset fields keep their default values.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a specific config file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.App == "" {
		return fmt.Errorf("app must not be empty")
	}
	if len(c.DeviceWindows) == 0 {
		return fmt.Errorf("device_windows must not be empty")
	}
	if c.LaunchTimeoutSec <= 0 || c.PromptTimeoutSec <= 0 || c.PollIntervalSec <= 0 {
		return fmt.Errorf("timeouts and poll interval must be positive")
	}
	return nil
}
