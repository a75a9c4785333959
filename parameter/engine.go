package parameter

import "time"

// Loop timing
const (
	// FrameUpdateInterval is the frame pacing interval for ticker-driven frontends (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventQueueSize is the capacity of the scheduler's pending external event queue
	EventQueueSize = 256
)

// Population limits
const (
	// MaxBodies caps the live set; pair checks are O(n²) per frame
	MaxBodies = 512
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "bounce.log"
	MaxLogSize  = 10 * 1024 * 1024
)
