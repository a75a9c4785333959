package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/render"
	"github.com/lixenwraith/bounce/status"
	"github.com/lixenwraith/bounce/vmath"
)

func newTestLoop() *engine.Loop {
	w := engine.NewWorld(engine.DefaultSettings(), 80, 46, vmath.NewFastRand(1))
	return engine.NewLoop(w, &engine.ManualScheduler{}, render.NewRecorder())
}

func TestResolveSeed(t *testing.T) {
	if got := resolveSeed(5, 9); got != 5 {
		t.Errorf("Expected flag seed 5, got %d", got)
	}
	if got := resolveSeed(0, 9); got != 9 {
		t.Errorf("Expected config seed 9, got %d", got)
	}
	if got := resolveSeed(0, 0); got == 0 {
		t.Error("Expected clock seed to be non-zero")
	}
}

func TestFrameInterval(t *testing.T) {
	if got := frameInterval(0); got != 0 {
		t.Errorf("Expected 0 for default, got %v", got)
	}
	if got := frameInterval(50); got != 20*time.Millisecond {
		t.Errorf("Expected 20ms at 50 fps, got %v", got)
	}
}

func TestHandleEventKeys(t *testing.T) {
	loop := newTestLoop()
	quit := 0
	cancel := func() { quit++ }

	handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), loop, cancel)
	if !loop.Paused() {
		t.Error("Expected space to pause")
	}

	loop.Spawn(10, 10)
	handleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), loop, cancel)
	if loop.World().Len() != 0 {
		t.Errorf("Expected c to clear, got %d bodies", loop.World().Len())
	}

	handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), loop, cancel)
	handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), loop, cancel)
	handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), loop, cancel)
	if quit != 3 {
		t.Errorf("Expected 3 quit requests, got %d", quit)
	}
}

func TestHandleEventClickSpawns(t *testing.T) {
	loop := newTestLoop()

	handleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone), loop, func() {})
	if loop.World().Len() != 1 {
		t.Fatalf("Expected click to spawn one body, got %d", loop.World().Len())
	}
	b := loop.World().Bodies.Snapshot()[0]
	if b.Pos.X != 10.5 || b.Pos.Y != 11 {
		t.Errorf("Expected body at (10.5, 11), got %+v", b.Pos)
	}

	// Release and status-row clicks do not spawn
	handleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone), loop, func() {})
	handleEvent(tcell.NewEventMouse(10, 23, tcell.Button1, tcell.ModNone), loop, func() {})
	if loop.World().Len() != 1 {
		t.Errorf("Expected no further spawns, got %d bodies", loop.World().Len())
	}
}

func TestHandleEventResize(t *testing.T) {
	loop := newTestLoop()
	handleEvent(tcell.NewEventResize(120, 40), loop, func() {})
	w := loop.World()
	if w.Width != 120 || w.Height != 78 {
		t.Errorf("Expected surface 120x78, got %vx%v", w.Width, w.Height)
	}
}

func TestStatusText(t *testing.T) {
	loop := newTestLoop()
	loop.Spawn(20, 20)
	loop.Frame()
	loop.TogglePause()

	metrics := status.NewCollector(nil)
	s := statusText(loop, metrics)
	for _, want := range []string{"bodies 1", "frame 1", "fps 0", "decompose/ladder", "PAUSED"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in status %q", want, s)
		}
	}
	if strings.Contains(s, "tier") {
		t.Errorf("Expected no tier before any ladder merge, got %q", s)
	}

	metrics.OnMerge(engine.MergeEvent{Tier: 3, OnLadder: true})
	if s := statusText(loop, metrics); !strings.Contains(s, "tier 3") {
		t.Errorf("Expected \"tier 3\" in status %q", s)
	}
}
