package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuiclock/internal/clock"
)

func TestGameLogTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	cfg := clock.Config{Mode: clock.Bullet, PlayerOne: "Ann", PlayerTwo: "Bob"}
	g := NewGameLog(New(&buf), cfg)

	engine := clock.New(cfg, nil)
	engine.Tap(clock.PlayerOne)
	g.Tap(clock.PlayerOne, engine.Snapshot())
	g.Ended(engine.Snapshot(), 3*time.Second)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %s", len(lines), buf.String())
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		if entry["game_id"] != g.ID().String() {
			t.Fatalf("missing game id in %q", line)
		}
	}
	if !strings.Contains(lines[0], `"mode":"bullet"`) || !strings.Contains(lines[0], `"start_seconds":120`) {
		t.Fatalf("unexpected created line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"active":"player one"`) {
		t.Fatalf("unexpected tap line: %s", lines[1])
	}
}

func TestNewNilWriterIsSilent(t *testing.T) {
	g := NewGameLog(New(nil), clock.Config{Mode: clock.FreeGame})
	g.Reset()
	g.Alert(clock.AlertTurnSwitched, clock.PlayerTwo)
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "tuiclock.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close log: %v", err)
	}
}
