package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Game.Mode != nil || cfg.Alerts.Bell != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[game]
mode = "bullet"
player-one = "Ann"
sudden-death = "00:05"

[alerts]
bell = false

[keys]
player-two = "k"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Mode == nil || *cfg.Game.Mode != "bullet" {
		t.Fatalf("unexpected mode: %v", cfg.Game.Mode)
	}
	if cfg.Game.PlayerOne == nil || *cfg.Game.PlayerOne != "Ann" {
		t.Fatalf("unexpected player one: %v", cfg.Game.PlayerOne)
	}
	if cfg.Game.PlayerTwo != nil {
		t.Fatalf("expected player two to be unset")
	}
	if cfg.Alerts.Bell == nil || *cfg.Alerts.Bell {
		t.Fatalf("expected bell=false")
	}
	if cfg.Keys.PlayerTwo == nil || *cfg.Keys.PlayerTwo != "k" {
		t.Fatalf("unexpected key: %v", cfg.Keys.PlayerTwo)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nincrement = 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if got := DefaultConfigPath(); got != filepath.Join(dir, "cfg", "tuiclock", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "data", "tuiclock", "tuiclock.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "tuiclock", "tuiclock.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
}
