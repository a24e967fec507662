// Package tui provides the Bubble Tea chess clock interface.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiclock/internal/clock"
)

const (
	faceWidth   = 30
	faceHeight  = 7
	faceGap     = 4
	nameEllipse = "…"
)

var (
	faceStyle = lipgloss.NewStyle().
			Width(faceWidth).
			Height(faceHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	activeFaceStyle   = faceStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	lowFaceStyle      = faceStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
	nameStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	activeNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	timeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	activeTimeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	lowTimeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	badgeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	resultStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(0, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#C89A3A"))
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	modeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	selectedModeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#4A4A4A")).Padding(0, 1)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type faceInfo struct {
	name    string
	seconds int
	active  bool
	low     bool
	badge   string
}

func faceFor(s clock.State, p clock.Player) faceInfo {
	info := faceInfo{
		name:    s.Names[p],
		seconds: s.Remaining[p],
		active:  s.IsActive(p),
		low:     s.Mode.Countdown() && s.Remaining[p] <= clock.NearExpirySeconds,
	}
	switch {
	case s.HasWinner && s.Winner == p:
		info.badge = "winner"
	case s.HasWinner:
		info.badge = "flagged"
	case info.active:
		info.badge = "to move"
	}
	return info
}

// truncateName shortens a name to fit the face, accounting for wide runes.
func truncateName(name string, width int) string {
	if runewidth.StringWidth(name) <= width {
		return name
	}
	return runewidth.Truncate(name, width, nameEllipse)
}

func renderFace(info faceInfo) string {
	style := faceStyle
	ns, ts := nameStyle, timeStyle
	if info.active {
		style = activeFaceStyle
		ns, ts = activeNameStyle, activeTimeStyle
	}
	if info.low {
		style = lowFaceStyle
		ts = lowTimeStyle
	}
	name := truncateName(info.name, faceWidth-4)
	body := lipgloss.JoinVertical(lipgloss.Center,
		ns.Render(name),
		"",
		ts.Render(clock.FormatSeconds(info.seconds)),
		"",
		badgeStyle.Render(info.badge),
	)
	return style.Render(body)
}

// renderFaces lays the two faces side by side, or stacked when the terminal is narrow.
func renderFaces(s clock.State, width int) string {
	one := renderFace(faceFor(s, clock.PlayerOne))
	two := renderFace(faceFor(s, clock.PlayerTwo))
	if width > 0 && width < 2*(faceWidth+2)+faceGap {
		return lipgloss.JoinVertical(lipgloss.Center, one, two)
	}
	gap := lipgloss.NewStyle().Width(faceGap).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Center, one, gap, two)
}
