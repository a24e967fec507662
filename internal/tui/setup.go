package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiclock/internal/clock"
	"github.com/verte-zerg/tuiclock/internal/model"
)

const (
	fieldPlayerOne = iota
	fieldPlayerTwo
	fieldMode
	fieldSuddenDeath
	fieldCount
)

const (
	defaultPlayerOne = "Player 1"
	defaultPlayerTwo = "Player 2"
	nameCharLimit    = 32
)

// setupForm collects player names, the time mode and the sudden-death duration.
type setupForm struct {
	keys   setupKeyMap
	inputs [3]textinput.Model
	mode   clock.Mode
	focus  int
	err    string
}

func newSetupForm(cfg model.Config) setupForm {
	f := setupForm{keys: newSetupKeyMap(), mode: cfg.Mode}

	p1 := textinput.New()
	p1.Prompt = ""
	p1.Placeholder = defaultPlayerOne
	p1.CharLimit = nameCharLimit
	p1.SetValue(cfg.PlayerOne)

	p2 := textinput.New()
	p2.Prompt = ""
	p2.Placeholder = defaultPlayerTwo
	p2.CharLimit = nameCharLimit
	p2.SetValue(cfg.PlayerTwo)

	sd := textinput.New()
	sd.Prompt = ""
	sd.Placeholder = "HH:MM"
	sd.CharLimit = 5
	if cfg.SuddenDeathSeconds > 0 {
		sd.SetValue(clock.FormatHourMinute(cfg.SuddenDeathSeconds))
	}

	f.inputs = [3]textinput.Model{p1, p2, sd}
	f.setFocus(fieldPlayerOne)
	return f
}

func inputIndex(field int) (int, bool) {
	switch field {
	case fieldPlayerOne:
		return 0, true
	case fieldPlayerTwo:
		return 1, true
	case fieldSuddenDeath:
		return 2, true
	default:
		return 0, false
	}
}

func (f *setupForm) setFocus(field int) tea.Cmd {
	f.focus = field
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if idx, ok := inputIndex(field); ok {
		return f.inputs[idx].Focus()
	}
	return nil
}

// move shifts focus by delta, skipping the duration field unless it applies.
func (f *setupForm) move(delta int) tea.Cmd {
	next := (f.focus + delta + fieldCount) % fieldCount
	if next == fieldSuddenDeath && f.mode != clock.SuddenDeath {
		next = (next + delta + fieldCount) % fieldCount
	}
	return f.setFocus(next)
}

func (f *setupForm) cycleMode(delta int) {
	modes := clock.Modes()
	idx := 0
	for i, m := range modes {
		if m == f.mode {
			idx = i
		}
	}
	idx = (idx + delta + len(modes)) % len(modes)
	f.mode = modes[idx]
}

// update handles a key press. submitted is true when the form was confirmed.
func (f *setupForm) update(msg tea.KeyMsg) (cmd tea.Cmd, submitted bool) {
	switch {
	case key.Matches(msg, f.keys.Start):
		return nil, true
	case key.Matches(msg, f.keys.Next):
		return f.move(1), false
	case key.Matches(msg, f.keys.Prev):
		return f.move(-1), false
	}
	if f.focus == fieldMode {
		switch {
		case key.Matches(msg, f.keys.Left):
			f.cycleMode(-1)
		case key.Matches(msg, f.keys.Right), msg.String() == " ":
			f.cycleMode(1)
		}
		return nil, false
	}
	idx, ok := inputIndex(f.focus)
	if !ok {
		return nil, false
	}
	f.inputs[idx], cmd = f.inputs[idx].Update(msg)
	return cmd, false
}

// apply validates the form and writes its values into cfg.
func (f *setupForm) apply(cfg *model.Config) error {
	p1 := strings.TrimSpace(f.inputs[0].Value())
	if p1 == "" {
		p1 = defaultPlayerOne
	}
	p2 := strings.TrimSpace(f.inputs[1].Value())
	if p2 == "" {
		p2 = defaultPlayerTwo
	}
	seconds := cfg.SuddenDeathSeconds
	if f.mode == clock.SuddenDeath {
		hour, minute, err := clock.ParseHourMinute(f.inputs[2].Value())
		if err != nil {
			f.err = err.Error()
			return err
		}
		seconds = clock.SuddenDeathSeconds(hour, minute)
		if seconds <= 0 {
			err := errors.New("sudden death duration must be at least one minute")
			f.err = err.Error()
			return err
		}
	}
	f.err = ""
	cfg.PlayerOne = p1
	cfg.PlayerTwo = p2
	cfg.Mode = f.mode
	cfg.SuddenDeathSeconds = seconds
	return nil
}

func (f *setupForm) view(width int) string {
	label := func(field int, text string) string {
		if f.focus == field {
			return focusedLabelStyle.Render("> " + text)
		}
		return labelStyle.Render("  " + text)
	}

	var modes []string
	for _, m := range clock.Modes() {
		if m == f.mode {
			modes = append(modes, selectedModeStyle.Render(m.Title()))
		} else {
			modes = append(modes, modeStyle.Render(m.Title()))
		}
	}

	rows := []string{
		titleStyle.Render("tuiclock"),
		"",
		label(fieldPlayerOne, "Player one  ") + f.inputs[0].View(),
		label(fieldPlayerTwo, "Player two  ") + f.inputs[1].View(),
		label(fieldMode, "Mode        ") + strings.Join(modes, " "),
	}
	if f.mode == clock.SuddenDeath {
		rows = append(rows, label(fieldSuddenDeath, "Duration    ")+f.inputs[2].View())
	} else {
		start := f.mode.StartSeconds(0)
		direction := "counts down from " + clock.FormatSeconds(start)
		if !f.mode.Countdown() {
			direction = "counts up from 00:00"
		}
		rows = append(rows, labelStyle.Render("              "+direction))
	}
	if f.err != "" {
		rows = append(rows, "", errorStyle.Render(f.err))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
