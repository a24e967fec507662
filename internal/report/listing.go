package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/tuiclock/internal/clock"
	"github.com/verte-zerg/tuiclock/internal/model"
)

// RenderModes prints the available time modes.
func RenderModes(w io.Writer) error {
	rows := make([][]string, 0, len(clock.Modes()))
	for _, m := range clock.Modes() {
		start := clock.FormatSeconds(m.StartSeconds(0))
		direction := "down"
		switch {
		case m == clock.SuddenDeath:
			start = "HH:MM"
		case !m.Countdown():
			direction = "up"
		}
		rows = append(rows, []string{m.String(), m.Title(), start, direction})
	}
	return writeLines(w, FormatTable([]string{"Mode", "Name", "Start", "Counts"}, rows, map[int]bool{2: true}))
}

// RenderSetups prints remembered setups, most recent first.
func RenderSetups(w io.Writer, setups []model.Setup, now time.Time) error {
	if len(setups) == 0 {
		_, err := fmt.Fprintln(w, "No setups found.")
		return err
	}
	rows := make([][]string, 0, len(setups))
	for _, s := range setups {
		mode := s.Mode.Title()
		if s.Mode == clock.SuddenDeath {
			mode += " " + clock.FormatHourMinute(s.SuddenDeathSeconds)
		}
		rows = append(rows, []string{
			s.PlayerOne,
			s.PlayerTwo,
			mode,
			strconv.Itoa(s.Uses),
			humanizeAgo(now.Sub(s.UsedAt)),
		})
	}
	return writeLines(w, FormatTable([]string{"Player one", "Player two", "Mode", "Uses", "Last used"}, rows, map[int]bool{3: true}))
}

func humanizeAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
