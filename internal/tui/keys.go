package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/tuiclock/internal/model"
)

type clockKeyMap struct {
	PlayerOne key.Binding
	PlayerTwo key.Binding
	Reset     key.Binding
	Setup     key.Binding
	Quit      key.Binding
}

func newClockKeyMap(cfg model.KeyConfig) clockKeyMap {
	return clockKeyMap{
		PlayerOne: key.NewBinding(
			key.WithKeys(cfg.PlayerOne, "left"),
			key.WithHelp(cfg.PlayerOne+"/←", "tap player one"),
		),
		PlayerTwo: key.NewBinding(
			key.WithKeys(cfg.PlayerTwo, "right"),
			key.WithHelp(cfg.PlayerTwo+"/→", "tap player two"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		Setup: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "setup"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k clockKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayerOne, k.PlayerTwo, k.Reset, k.Setup, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k clockKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type setupKeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Left  key.Binding
	Right key.Binding
	Start key.Binding
	Quit  key.Binding
}

func newSetupKeyMap() setupKeyMap {
	return setupKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev mode"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next mode"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k setupKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Right, k.Start, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k setupKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
