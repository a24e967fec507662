package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiclock/internal/clock"
)

func TestTruncateNameKeepsShortNames(t *testing.T) {
	if got := truncateName("Ann", 10); got != "Ann" {
		t.Fatalf("unexpected name: %q", got)
	}
}

func TestTruncateNameWideRunes(t *testing.T) {
	name := "国際チェス連盟グランドマスター"
	got := truncateName(name, 10)
	if w := runewidth.StringWidth(got); w > 10 {
		t.Fatalf("expected width <= 10, got %d (%q)", w, got)
	}
	if !strings.HasSuffix(got, nameEllipse) {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}

func TestFaceForBadges(t *testing.T) {
	e := clock.New(clock.Config{Mode: clock.SuddenDeath, PlayerOne: "Ann", PlayerTwo: "Bob", SuddenDeathSeconds: 60}, nil)
	e.Tap(clock.PlayerTwo)
	s := e.Snapshot()
	if info := faceFor(s, clock.PlayerTwo); !info.active || info.badge != "to move" || info.low {
		t.Fatalf("unexpected active face: %+v", info)
	}
	if info := faceFor(s, clock.PlayerOne); info.active || info.badge != "" {
		t.Fatalf("unexpected idle face: %+v", info)
	}

	for i := 0; i < 60; i++ {
		e.Tick()
	}
	s = e.Snapshot()
	if info := faceFor(s, clock.PlayerOne); info.badge != "winner" {
		t.Fatalf("expected winner badge, got %+v", info)
	}
	if info := faceFor(s, clock.PlayerTwo); info.badge != "flagged" || !info.low {
		t.Fatalf("expected flagged low face, got %+v", info)
	}
}

func TestFreeGameFaceNeverLow(t *testing.T) {
	e := clock.New(clock.Config{Mode: clock.FreeGame, PlayerOne: "Ann", PlayerTwo: "Bob"}, nil)
	if info := faceFor(e.Snapshot(), clock.PlayerOne); info.low {
		t.Fatalf("free game faces must not be marked low")
	}
}

func TestRenderFacesStacksWhenNarrow(t *testing.T) {
	e := clock.New(clock.Config{Mode: clock.Bullet, PlayerOne: "Ann", PlayerTwo: "Bob"}, nil)
	s := e.Snapshot()
	wide := renderFaces(s, 200)
	narrow := renderFaces(s, 40)
	if strings.Count(narrow, "\n") <= strings.Count(wide, "\n") {
		t.Fatalf("expected stacked layout to be taller")
	}
	if !strings.Contains(wide, "02:00") {
		t.Fatalf("expected formatted time in face")
	}
}
