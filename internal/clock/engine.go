package clock

import (
	"fmt"
	"sync"
)

// NearExpirySeconds is the remaining time at or below which the
// near-expiry alert fires.
const NearExpirySeconds = 3

// AlertKind identifies a signal raised by the engine.
type AlertKind int

// Alert kinds.
const (
	AlertTurnSwitched AlertKind = iota
	AlertNearExpiry
)

func (k AlertKind) String() string {
	switch k {
	case AlertTurnSwitched:
		return "turn-switched"
	case AlertNearExpiry:
		return "near-expiry"
	default:
		return fmt.Sprintf("alert(%d)", int(k))
	}
}

// Alerter receives alert signals. Implementations must not call back into the engine.
type Alerter interface {
	Signal(kind AlertKind, player Player)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(kind AlertKind, player Player)

// Signal implements Alerter.
func (f AlerterFunc) Signal(kind AlertKind, player Player) {
	f(kind, player)
}

type nopAlerter struct{}

func (nopAlerter) Signal(AlertKind, Player) {}

// Config holds the immutable settings of a game.
type Config struct {
	Mode               Mode
	PlayerOne          string
	PlayerTwo          string
	SuddenDeathSeconds int
}

// Phase is the coarse state of a game.
type Phase int

// Game phases.
const (
	NotStarted Phase = iota
	Running
	Ended
)

// State is a snapshot of the clock.
type State struct {
	Mode       Mode
	Names      [2]string
	Remaining  [2]int
	Active     Player
	Running    bool
	Ended      bool
	Winner     Player
	HasWinner  bool
	AlertFired [2]bool
}

// Phase derives the game phase from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Ended:
		return Ended
	case s.Running:
		return Running
	default:
		return NotStarted
	}
}

// IsActive reports whether p's clock is running.
func (s State) IsActive(p Player) bool {
	return s.Running && !s.Ended && s.Active == p
}

// Engine owns a single game's clock state. Tick and Tap are the only mutators.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	alerter Alerter
	state   State
}

// New creates a game in the NotStarted phase.
func New(cfg Config, alerter Alerter) *Engine {
	if alerter == nil {
		alerter = nopAlerter{}
	}
	e := &Engine{cfg: cfg, alerter: alerter}
	e.state = initialState(cfg)
	return e
}

func initialState(cfg Config) State {
	start := cfg.Mode.StartSeconds(cfg.SuddenDeathSeconds)
	return State{
		Mode:      cfg.Mode,
		Names:     [2]string{cfg.PlayerOne, cfg.PlayerTwo},
		Remaining: [2]int{start, start},
	}
}

// Config returns the settings the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset starts a new game with the same settings.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = initialState(e.cfg)
}

// Tap handles a press on p's side of the clock. Before the first tap it
// starts p's clock. While running, tapping the active side hands the turn to
// the opponent and tapping the stopped side leaves activity unchanged.
// Taps after the game has ended are ignored.
func (e *Engine) Tap(p Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Ended {
		return
	}
	switch {
	case !e.state.Running:
		e.state.Running = true
		e.state.Active = p
	case e.state.Active == p:
		e.state.Active = p.Other()
	}
	e.alerter.Signal(AlertTurnSwitched, p)
}

// Tick accounts one elapsed second to the active player.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Ended || !e.state.Running {
		return
	}
	p := e.state.Active
	if !e.state.Mode.Countdown() {
		e.state.Remaining[p]++
		return
	}
	if e.state.Remaining[p] <= 0 {
		e.state.Remaining[p] = 0
		e.end(p.Other())
		return
	}
	e.state.Remaining[p]--
	if e.state.Remaining[p] <= NearExpirySeconds && !e.state.AlertFired[p] {
		e.state.AlertFired[p] = true
		e.alerter.Signal(AlertNearExpiry, p)
	}
	if e.state.Remaining[p] == 0 {
		e.end(p.Other())
	}
}

func (e *Engine) end(winner Player) {
	e.state.Ended = true
	e.state.Running = false
	e.state.Winner = winner
	e.state.HasWinner = true
}

// WinnerName returns the display name of the winner once the game has ended.
func (e *Engine) WinnerName() (string, bool) {
	s := e.Snapshot()
	if !s.HasWinner {
		return "", false
	}
	return s.Names[s.Winner], true
}

// Result returns the end-of-game banner, or an empty string while the game is on.
func (e *Engine) Result() string {
	name, ok := e.WinnerName()
	if !ok {
		return ""
	}
	return name + " has won!"
}
