package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/parameter"
)

// SoundManager plays merge and impact effects through a shared mixer
// It implements engine.Observer; all Play calls are no-ops until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	dropped     uint64
}

// NewSoundManager creates a sound manager; nil cfg uses LoadAudioConfig
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = LoadAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker; disabled configs skip device access and return nil
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("audio: initialized at %d Hz", sm.cfg.SampleRate)
	return nil
}

// Cleanup stops all sounds; the speaker itself stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
	if sm.dropped > 0 {
		log.Printf("audio: %d effects dropped at voice limit", sm.dropped)
	}
}

// Active reports whether sounds are being played
func (sm *SoundManager) Active() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayMerge plays the merge chime for a ladder tier
func (sm *SoundManager) PlayMerge(tier int) {
	sm.play(func() beep.Streamer { return CreateMergeChime(sm.cfg, tier) })
}

// PlayThud plays a floor impact; impacts slower than ThudMinSpeed are silent
func (sm *SoundManager) PlayThud(speed float64) {
	if ThudGain(speed) == 0 {
		return
	}
	sm.play(func() beep.Streamer { return CreateThud(sm.cfg, speed) })
}

func (sm *SoundManager) play(build func() beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= parameter.MaxVoices {
		sm.dropped++
		return
	}
	sm.mixer.Add(build())
}

// OnMerge implements engine.Observer
func (sm *SoundManager) OnMerge(ev engine.MergeEvent) {
	tier := 0
	if ev.OnLadder {
		tier = ev.Tier
	}
	sm.PlayMerge(tier)
}

// OnFloorBounce implements engine.Observer
func (sm *SoundManager) OnFloorBounce(ev engine.BounceEvent) {
	sm.PlayThud(ev.Speed)
}
