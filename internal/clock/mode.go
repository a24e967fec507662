// Package clock implements the two-player chess clock state machine.
package clock

import (
	"fmt"
	"strings"
)

// Mode selects how a game's clocks are initialized and which way they count.
type Mode int

// Supported time modes.
const (
	Classical Mode = iota
	Bullet
	SuddenDeath
	FreeGame
)

const (
	classicalSeconds = 300
	bulletSeconds    = 120
)

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{Classical, Bullet, SuddenDeath, FreeGame}
}

// String returns the mode name used in flags and config.
func (m Mode) String() string {
	switch m {
	case Classical:
		return "classical"
	case Bullet:
		return "bullet"
	case SuddenDeath:
		return "sudden-death"
	case FreeGame:
		return "free"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Title returns a human readable mode name.
func (m Mode) Title() string {
	switch m {
	case Classical:
		return "Classical"
	case Bullet:
		return "Bullet"
	case SuddenDeath:
		return "Sudden Death"
	case FreeGame:
		return "Free Game"
	default:
		return m.String()
	}
}

// Countdown reports whether clocks in this mode count down to zero.
func (m Mode) Countdown() bool {
	return m != FreeGame
}

// StartSeconds returns the starting time for both players.
// suddenDeath is only used for SuddenDeath.
func (m Mode) StartSeconds(suddenDeath int) int {
	switch m {
	case Classical:
		return classicalSeconds
	case Bullet:
		return bulletSeconds
	case SuddenDeath:
		return suddenDeath
	default:
		return 0
	}
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "classical":
		return Classical, nil
	case "bullet":
		return Bullet, nil
	case "sudden-death", "sudden":
		return SuddenDeath, nil
	case "free", "free-game":
		return FreeGame, nil
	default:
		names := make([]string, 0, len(Modes()))
		for _, m := range Modes() {
			names = append(names, m.String())
		}
		return 0, fmt.Errorf("unknown mode %q (available: %s)", value, strings.Join(names, ", "))
	}
}

// Player identifies one side of the clock.
type Player int

// The two players.
const (
	PlayerOne Player = iota
	PlayerTwo
)

// Other returns the opponent.
func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Player) String() string {
	if p == PlayerOne {
		return "player one"
	}
	return "player two"
}
