package parameter

import "time"

// Audio
const (
	AudioSampleRate     = 48000
	AudioBufferDuration = 100 * time.Millisecond
	DefaultMasterVolume = 0.5

	// MaxVoices caps concurrently playing effects; further requests are dropped
	MaxVoices = 12
)

// Merge chime
const (
	// MergeChimeBaseHz is the chime pitch for tier 0; each tier raises it by MergeChimeTierRatio
	MergeChimeBaseHz    = 440.0
	MergeChimeTierRatio = 1.122462 // one whole tone
	MergeChimeDuration  = 180 * time.Millisecond
	MergeChimeAttack    = 5 * time.Millisecond
	MergeChimeRelease   = 140 * time.Millisecond
	MergeChimeVolume    = 0.8
)

// Floor thud
const (
	ThudHz       = 70.0
	ThudDuration = 90 * time.Millisecond
	ThudAttack   = 2 * time.Millisecond
	ThudRelease  = 70 * time.Millisecond
	ThudVolume   = 0.6
	// ThudMinSpeed is the impact speed below which floor contacts are silent
	ThudMinSpeed = 6.0
	// ThudFullSpeed is the impact speed at which the thud reaches full volume
	ThudFullSpeed = 24.0
)
