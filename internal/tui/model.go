package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuiclock/internal/clock"
	"github.com/verte-zerg/tuiclock/internal/logging"
	"github.com/verte-zerg/tuiclock/internal/model"
	"github.com/verte-zerg/tuiclock/internal/store"
	"github.com/verte-zerg/tuiclock/internal/ticker"
)

type screen int

const (
	screenSetup screen = iota
	screenClock
)

// tickMsg carries one elapsed second. gen ties it to the tick source that produced it.
type tickMsg struct {
	gen int
	at  time.Time
}

type alert struct {
	kind   clock.AlertKind
	player clock.Player
}

// alertQueue collects engine signals during Update so they can be rendered afterwards.
type alertQueue struct {
	pending []alert
}

func (q *alertQueue) Signal(kind clock.AlertKind, player clock.Player) {
	q.pending = append(q.pending, alert{kind: kind, player: player})
}

func (q *alertQueue) drain() []alert {
	out := q.pending
	q.pending = nil
	return out
}

// Options wires the model to its collaborators.
type Options struct {
	Store  *store.Store
	Clock  clockwork.Clock
	Logger zerolog.Logger
	Bell   io.Writer
}

// Model implements the Bubble Tea chess clock UI.
type Model struct {
	config model.Config
	store  *store.Store
	clk    clockwork.Clock
	logger zerolog.Logger
	bell   io.Writer

	width  int
	height int

	screen    screen
	form      setupForm
	clockKeys clockKeyMap
	help      help.Model

	engine    *clock.Engine
	game      *logging.GameLog
	alerts    *alertQueue
	source    *ticker.Source
	tickGen   int
	startedAt time.Time
	status    string
}

// NewModel constructs a chess clock TUI model.
func NewModel(cfg model.Config, opts Options) *Model {
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	m := &Model{
		config:    cfg,
		store:     opts.Store,
		clk:       clk,
		logger:    opts.Logger,
		bell:      opts.Bell,
		form:      newSetupForm(cfg),
		clockKeys: newClockKeyMap(cfg.Keys),
		help:      help.New(),
		alerts:    &alertQueue{},
	}
	if cfg.SkipSetup {
		m.beginGame()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.screen == screenClock {
		return m.waitForTick()
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.leaveGame()
			return m, tea.Quit
		}
		if m.screen == screenSetup {
			return m.updateSetup(msg)
		}
		return m.updateClock(msg)
	default:
		if m.screen == screenSetup {
			return m, m.forwardToInputs(msg)
		}
		return m, nil
	}
}

func (m *Model) forwardToInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.form.inputs))
	for i := range m.form.inputs {
		var cmd tea.Cmd
		m.form.inputs[i], cmd = m.form.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.form.keys.Quit) {
		return m, tea.Quit
	}
	cmd, submitted := m.form.update(msg)
	if !submitted {
		return m, cmd
	}
	if err := m.form.apply(&m.config); err != nil {
		return m, nil
	}
	m.beginGame()
	return m, m.waitForTick()
}

func (m *Model) updateClock(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.clockKeys.PlayerOne):
		return m, m.tap(clock.PlayerOne)
	case key.Matches(msg, m.clockKeys.PlayerTwo):
		return m, m.tap(clock.PlayerTwo)
	case key.Matches(msg, m.clockKeys.Reset):
		m.engine.Reset()
		m.game.Reset()
		m.status = ""
		m.startedAt = time.Time{}
		m.startTicker()
		return m, m.waitForTick()
	case key.Matches(msg, m.clockKeys.Setup):
		m.leaveGame()
		m.screen = screenSetup
		m.form = newSetupForm(m.config)
		return m, textinput.Blink
	case key.Matches(msg, m.clockKeys.Quit):
		m.leaveGame()
		return m, tea.Quit
	default:
		return m, nil
	}
}

// beginGame remembers the setup, creates a fresh engine for it and shows the clock.
func (m *Model) beginGame() {
	m.rememberSetup()
	m.alerts = &alertQueue{}
	m.engine = clock.New(m.config.ClockConfig(), m.alerts)
	m.game = logging.NewGameLog(m.logger, m.engine.Config())
	m.screen = screenClock
	m.status = ""
	m.startedAt = time.Time{}
	m.startTicker()
}

// leaveGame stops tick delivery for the current game, if any.
func (m *Model) leaveGame() {
	if m.engine == nil {
		return
	}
	if s := m.engine.Snapshot(); s.Phase() == clock.Running {
		m.game.Abandoned(s)
	}
	m.stopTicker()
}

func (m *Model) rememberSetup() {
	if m.store == nil {
		return
	}
	setup := model.SetupFromConfig(m.config, m.clk.Now())
	if err := m.store.SaveSetup(context.Background(), setup); err != nil {
		m.logger.Error().Err(err).Msg("failed to save setup")
	}
}

func (m *Model) startTicker() {
	m.stopTicker()
	m.tickGen++
	m.source = ticker.New(context.Background(), m.clk)
}

func (m *Model) stopTicker() {
	if m.source != nil {
		m.source.Stop()
		m.source = nil
	}
}

func (m *Model) waitForTick() tea.Cmd {
	src, gen := m.source, m.tickGen
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		at, ok := src.Next()
		if !ok {
			return nil
		}
		return tickMsg{gen: gen, at: at}
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if m.engine == nil || m.source == nil || msg.gen != m.tickGen {
		return nil
	}
	m.engine.Tick()
	cmd := m.flushAlerts()
	if s := m.engine.Snapshot(); s.Ended {
		m.stopTicker()
		m.status = ""
		m.game.Ended(s, m.clk.Since(m.startedAt))
		return cmd
	}
	return tea.Batch(cmd, m.waitForTick())
}

func (m *Model) tap(p clock.Player) tea.Cmd {
	before := m.engine.Snapshot()
	if before.Ended {
		return nil
	}
	m.engine.Tap(p)
	if before.Phase() == clock.NotStarted {
		m.startedAt = m.clk.Now()
	}
	m.game.Tap(p, m.engine.Snapshot())
	return m.flushAlerts()
}

// flushAlerts logs pending engine signals, updates the status line and rings the bell.
func (m *Model) flushAlerts() tea.Cmd {
	pending := m.alerts.drain()
	if len(pending) == 0 {
		return nil
	}
	s := m.engine.Snapshot()
	for _, a := range pending {
		m.game.Alert(a.kind, a.player)
		switch a.kind {
		case clock.AlertTurnSwitched:
			if s.Running {
				m.status = s.Names[s.Active] + " to move"
			}
		case clock.AlertNearExpiry:
			m.status = s.Names[a.player] + " is low on time!"
		}
	}
	if !m.config.Bell || m.bell == nil {
		return nil
	}
	return ringBell(m.bell)
}

func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		// Best-effort: a missing bell never affects the game.
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content, footer string
	if m.screen == screenSetup {
		content = m.form.view(m.width)
		footer = m.help.View(m.form.keys)
	} else {
		content = m.clockView()
		footer = m.help.View(m.clockKeys)
	}
	footer = footerStyle.Render(footer)
	if m.width == 0 || m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) clockView() string {
	if m.engine == nil {
		return ""
	}
	s := m.engine.Snapshot()
	header := titleStyle.Render(s.Mode.Title())
	rows := []string{header, "", renderFaces(s, m.width), ""}
	switch {
	case s.Ended:
		rows = append(rows, resultStyle.Render(m.engine.Result()))
	case s.Phase() == clock.NotStarted:
		rows = append(rows, statusStyle.Render(m.startHint()))
	default:
		rows = append(rows, statusStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) startHint() string {
	keys := []string{m.clockKeys.PlayerOne.Help().Key, m.clockKeys.PlayerTwo.Help().Key}
	return "Press " + strings.Join(keys, " or ") + " to start"
}
