package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	def := Default()
	if cfg.App != def.App {
		t.Errorf("expected default app, got %q", cfg.App)
	}
	if cfg.LaunchTimeoutSec != def.LaunchTimeoutSec {
		t.Errorf("expected default launch timeout, got %d", cfg.LaunchTimeoutSec)
	}
}

func TestLoadFile_OverridesKeepOtherDefaults(t *testing.T) {
	path := writeConfig(t, `
app = "Apple Configurator"
prompt_timeout_sec = 45

[history]
enabled = false
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.App != "Apple Configurator" {
		t.Errorf("override lost: %q", cfg.App)
	}
	if cfg.PromptTimeoutSec != 45 {
		t.Errorf("override lost: %d", cfg.PromptTimeoutSec)
	}
	if cfg.LaunchTimeoutSec != Default().LaunchTimeoutSec {
		t.Errorf("unset field must keep default, got %d", cfg.LaunchTimeoutSec)
	}
	if cfg.History.Enabled {
		t.Error("history override lost")
	}
}

func TestLoadFile_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, `aplication = "typo"`)
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadFile_InvalidValuesRejected(t *testing.T) {
	path := writeConfig(t, `launch_timeout_sec = 0`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error for zero timeout")
	}

	path = writeConfig(t, `app = ""`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error for empty app")
	}

	path = writeConfig(t, `device_windows = []`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error for empty device windows")
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("ACDRIVE_CONFIG", "/tmp/custom.toml")
	if Path() != "/tmp/custom.toml" {
		t.Errorf("expected env override, got %q", Path())
	}
}
