package audio

import (
	"testing"

	"github.com/lixenwraith/bounce/engine"
)

var _ engine.Observer = (*SoundManager)(nil)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(DefaultAudioConfig())

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayMerge(2)
	sm.PlayThud(50)
	sm.OnMerge(engine.MergeEvent{Tier: 1, OnLadder: true})
	sm.OnFloorBounce(engine.BounceEvent{Speed: 40})
	sm.Cleanup()

	if sm.Active() {
		t.Error("Expected inactive manager without Initialize")
	}
}

// TestSoundManagerDisabled verifies disabled config never touches the device
func TestSoundManagerDisabled(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	if err := sm.Initialize(); err != nil {
		t.Errorf("Expected nil error for disabled audio, got %v", err)
	}
	if sm.Active() {
		t.Error("Expected disabled manager to stay inactive")
	}
	sm.PlayMerge(0)
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(DefaultAudioConfig())

	// Speaker initialization may fail in CI/test environments without audio devices
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}

	sm.PlayMerge(1)
	sm.PlayThud(30)
	sm.Cleanup()
	if sm.Active() {
		t.Error("Expected inactive after Cleanup")
	}
}
