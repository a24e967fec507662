package tui

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuiclock/internal/clock"
	"github.com/verte-zerg/tuiclock/internal/model"
	"github.com/verte-zerg/tuiclock/internal/store"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig(mode clock.Mode) model.Config {
	return model.Config{
		Mode:               mode,
		PlayerOne:          "Ann",
		PlayerTwo:          "Bob",
		SuddenDeathSeconds: 60,
		SkipSetup:          true,
		Keys:               model.KeyConfig{PlayerOne: "a", PlayerTwo: "l"},
	}
}

func newTestModel(t *testing.T, cfg model.Config, opts Options) *Model {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = clockwork.NewFakeClock()
	}
	opts.Logger = zerolog.Nop()
	m := NewModel(cfg, opts)
	t.Cleanup(m.stopTicker)
	return m
}

func (m *Model) sendTicks(n int) {
	for i := 0; i < n; i++ {
		m.Update(tickMsg{gen: m.tickGen})
	}
}

func TestSkipSetupStartsOnClockScreen(t *testing.T) {
	m := newTestModel(t, testConfig(clock.Bullet), Options{})
	if m.screen != screenClock {
		t.Fatalf("expected clock screen")
	}
	if m.Init() == nil {
		t.Fatalf("expected a tick command from Init")
	}
	if !strings.Contains(m.View(), "Press a/← or l/→ to start") {
		t.Fatalf("expected start hint, got:\n%s", m.View())
	}
}

func TestTapAndTickFlow(t *testing.T) {
	m := newTestModel(t, testConfig(clock.Bullet), Options{})
	m.sendTicks(5)
	if got := m.engine.Snapshot().Remaining; got != [2]int{120, 120} {
		t.Fatalf("ticks before the first tap must not count, got %v", got)
	}

	m.Update(runeKey("a"))
	m.sendTicks(3)
	m.Update(tickMsg{gen: m.tickGen - 1})
	s := m.engine.Snapshot()
	if !s.IsActive(clock.PlayerOne) || s.Remaining != [2]int{117, 120} {
		t.Fatalf("unexpected state: %+v", s)
	}

	m.Update(runeKey("a"))
	m.sendTicks(2)
	s = m.engine.Snapshot()
	if !s.IsActive(clock.PlayerTwo) || s.Remaining != [2]int{117, 118} {
		t.Fatalf("unexpected state after switch: %+v", s)
	}
	if !strings.Contains(m.View(), "Bob to move") {
		t.Fatalf("expected turn status in view")
	}
}

func TestGameEndShowsResult(t *testing.T) {
	m := newTestModel(t, testConfig(clock.SuddenDeath), Options{})
	m.Update(runeKey("a"))
	m.sendTicks(60)

	s := m.engine.Snapshot()
	if !s.Ended || s.Winner != clock.PlayerTwo {
		t.Fatalf("expected Bob to win, got %+v", s)
	}
	if m.source != nil {
		t.Fatalf("expected tick source to stop after the game ended")
	}
	if !strings.Contains(m.View(), "Bob has won!") {
		t.Fatalf("expected result banner, got:\n%s", m.View())
	}
	if _, cmd := m.Update(runeKey("l")); cmd != nil {
		t.Fatalf("expected taps after the end to be ignored")
	}

	m.Update(runeKey("r"))
	s = m.engine.Snapshot()
	if s.Phase() != clock.NotStarted || s.Remaining != [2]int{60, 60} {
		t.Fatalf("expected a fresh game after reset, got %+v", s)
	}
	if m.source == nil {
		t.Fatalf("expected tick source to restart after reset")
	}
}

func TestAlertsRingBell(t *testing.T) {
	var bell bytes.Buffer
	cfg := testConfig(clock.SuddenDeath)
	cfg.Bell = true
	m := newTestModel(t, cfg, Options{Bell: &bell})

	_, cmd := m.Update(runeKey("l"))
	if cmd == nil {
		t.Fatalf("expected a bell command for the tap")
	}
	cmd()
	if bell.String() != "\a" {
		t.Fatalf("expected one bell, got %q", bell.String())
	}

	m.sendTicks(57)
	if !strings.Contains(m.View(), "Bob is low on time!") {
		t.Fatalf("expected low-time status, got:\n%s", m.View())
	}

	quiet := newTestModel(t, testConfig(clock.Bullet), Options{Bell: &bell})
	if _, cmd := quiet.Update(runeKey("a")); cmd != nil {
		t.Fatalf("expected no bell when disabled")
	}
}

func TestSetupFormStartsGame(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "tuiclock.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	cfg := model.Config{Keys: model.KeyConfig{PlayerOne: "a", PlayerTwo: "l"}}
	m := newTestModel(t, cfg, Options{Store: st})
	if m.screen != screenSetup {
		t.Fatalf("expected setup screen")
	}
	m.Update(runeKey("Ann"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(runeKey("Bob"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected tick command after starting")
	}
	if m.screen != screenClock {
		t.Fatalf("expected clock screen after submit")
	}
	if m.config.Mode != clock.Bullet || m.config.PlayerOne != "Ann" || m.config.PlayerTwo != "Bob" {
		t.Fatalf("unexpected config: %+v", m.config)
	}

	last, ok, err := st.LastSetup(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected saved setup: ok=%v err=%v", ok, err)
	}
	if last.PlayerOne != "Ann" || last.Mode != clock.Bullet {
		t.Fatalf("unexpected saved setup: %+v", last)
	}
}

func TestSetupRejectsEmptySuddenDeath(t *testing.T) {
	cfg := model.Config{Mode: clock.SuddenDeath, Keys: model.KeyConfig{PlayerOne: "a", PlayerTwo: "l"}}
	m := newTestModel(t, cfg, Options{})
	for i := 0; i < 3; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.form.focus != fieldSuddenDeath {
		t.Fatalf("expected duration field focused, got %d", m.form.focus)
	}
	m.Update(runeKey("00:00"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenSetup {
		t.Fatalf("expected to stay on setup")
	}
	if !strings.Contains(m.View(), "at least one minute") {
		t.Fatalf("expected validation error in view")
	}

	m.form.inputs[2].SetValue("00:05")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenClock || m.config.SuddenDeathSeconds != 300 {
		t.Fatalf("expected game with 300 seconds, got %+v", m.config)
	}
	if m.config.PlayerOne != defaultPlayerOne || m.config.PlayerTwo != defaultPlayerTwo {
		t.Fatalf("expected default names, got %q and %q", m.config.PlayerOne, m.config.PlayerTwo)
	}
}

func TestEscReturnsToSetup(t *testing.T) {
	m := newTestModel(t, testConfig(clock.Classical), Options{})
	m.Update(runeKey("a"))
	gen := m.tickGen
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenSetup || m.source != nil {
		t.Fatalf("expected setup screen with ticks stopped")
	}
	m.Update(tickMsg{gen: gen})
	if got := m.engine.Snapshot().Remaining[clock.PlayerOne]; got != 300 {
		t.Fatalf("ticks must not reach a left game, got %d", got)
	}
	if m.form.inputs[0].Value() != "Ann" {
		t.Fatalf("expected setup to keep previous names")
	}
}
