// Package logging writes the game event log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuiclock/internal/clock"
)

// OpenFile opens (or creates) the event log file for appending.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// New returns a JSON logger writing to w. A nil writer disables logging.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// GameLog records the events of one game.
type GameLog struct {
	log zerolog.Logger
	id  uuid.UUID
}

// NewGameLog tags every event of a new game with a fresh id.
func NewGameLog(base zerolog.Logger, cfg clock.Config) *GameLog {
	id := uuid.New()
	g := &GameLog{
		id: id,
		log: base.With().
			Str("game_id", id.String()).
			Logger(),
	}
	g.log.Info().
		Str("mode", cfg.Mode.String()).
		Str("player_one", cfg.PlayerOne).
		Str("player_two", cfg.PlayerTwo).
		Int("start_seconds", cfg.Mode.StartSeconds(cfg.SuddenDeathSeconds)).
		Msg("game created")
	return g
}

// ID returns the game id.
func (g *GameLog) ID() uuid.UUID {
	return g.id
}

// Alert logs an alert raised by the engine.
func (g *GameLog) Alert(kind clock.AlertKind, player clock.Player) {
	g.log.Debug().
		Str("alert", kind.String()).
		Str("player", player.String()).
		Msg("alert")
}

// Tap logs a tap together with the resulting state.
func (g *GameLog) Tap(player clock.Player, s clock.State) {
	ev := g.log.Info().
		Str("tapped", player.String()).
		Ints("remaining", s.Remaining[:])
	if s.Running {
		ev = ev.Str("active", s.Active.String())
	}
	ev.Msg("tap")
}

// Ended logs the result of a game.
func (g *GameLog) Ended(s clock.State, elapsed time.Duration) {
	g.log.Info().
		Str("winner", s.Winner.String()).
		Str("winner_name", s.Names[s.Winner]).
		Ints("remaining", s.Remaining[:]).
		Dur("elapsed", elapsed).
		Msg("game ended")
}

// Reset logs a restart with the same settings.
func (g *GameLog) Reset() {
	g.log.Info().Msg("game reset")
}

// Abandoned logs leaving a game before it ended.
func (g *GameLog) Abandoned(s clock.State) {
	g.log.Info().
		Ints("remaining", s.Remaining[:]).
		Msg("game abandoned")
}
