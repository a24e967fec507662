package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSeconds renders seconds as MM:SS. Minutes are not capped at 99.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// SuddenDeathSeconds converts a picked hour and minute into a duration in seconds.
func SuddenDeathSeconds(hour, minute int) int {
	return hour*3600 + minute*60
}

// ParseHourMinute parses an "HH:MM" value as picked on the setup screen.
func ParseHourMinute(value string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid duration %q: expected HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", value, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", value, err)
	}
	if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q: must be between 0 and 23", value)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q: must be between 0 and 59", value)
	}
	return hour, minute, nil
}

// FormatHourMinute is the inverse of ParseHourMinute for whole-minute durations.
func FormatHourMinute(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/3600, (seconds%3600)/60)
}
