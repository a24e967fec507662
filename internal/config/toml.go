// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game   GameConfig   `toml:"game"`
	Alerts AlertsConfig `toml:"alerts"`
	Keys   KeysConfig   `toml:"keys"`
}

// GameConfig maps game-related settings.
type GameConfig struct {
	Mode        *string `toml:"mode"`
	PlayerOne   *string `toml:"player-one"`
	PlayerTwo   *string `toml:"player-two"`
	SuddenDeath *string `toml:"sudden-death"`
	SkipSetup   *bool   `toml:"skip-setup"`
}

// AlertsConfig maps alert settings.
type AlertsConfig struct {
	Bell *bool `toml:"bell"`
}

// KeysConfig maps tap keys.
type KeysConfig struct {
	PlayerOne *string `toml:"player-one"`
	PlayerTwo *string `toml:"player-two"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
