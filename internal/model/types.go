// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/tuiclock/internal/clock"
)

// Config defines game settings collected from flags, config and the setup screen.
type Config struct {
	Mode               clock.Mode
	PlayerOne          string
	PlayerTwo          string
	SuddenDeathSeconds int
	Bell               bool
	SkipSetup          bool
	Keys               KeyConfig
}

// KeyConfig defines the tap keys for each player.
type KeyConfig struct {
	PlayerOne string
	PlayerTwo string
}

// ClockConfig returns the engine settings for a game.
func (c Config) ClockConfig() clock.Config {
	return clock.Config{
		Mode:               c.Mode,
		PlayerOne:          c.PlayerOne,
		PlayerTwo:          c.PlayerTwo,
		SuddenDeathSeconds: c.SuddenDeathSeconds,
	}
}

// Setup is a remembered combination of players and time mode.
type Setup struct {
	PlayerOne          string
	PlayerTwo          string
	Mode               clock.Mode
	SuddenDeathSeconds int
	UsedAt             time.Time
	Uses               int
}

// SetupFromConfig extracts the persisted part of a game config.
func SetupFromConfig(cfg Config, usedAt time.Time) Setup {
	return Setup{
		PlayerOne:          cfg.PlayerOne,
		PlayerTwo:          cfg.PlayerTwo,
		Mode:               cfg.Mode,
		SuddenDeathSeconds: cfg.SuddenDeathSeconds,
		UsedAt:             usedAt,
	}
}
