package engine

import (
	"github.com/lixenwraith/bounce/core"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

// MergeEvent describes one merge: two consumed bodies, one survivor
type MergeEvent struct {
	Survivor core.Entity
	Consumed [2]core.Entity
	Pos      vmath.Vec2
	Radius   float64
	// Tier is the ladder index of Radius, valid when OnLadder
	Tier     int
	OnLadder bool
}

// BounceEvent describes a boundary contact during integration
type BounceEvent struct {
	Entity core.Entity
	Flags  physics.Bounce
	Pos    vmath.Vec2
	// Speed is the vertical impact speed before restitution was applied
	Speed float64
}

// Observer receives simulation events after each step, on the frame driver's goroutine
type Observer interface {
	OnMerge(ev MergeEvent)
	OnFloorBounce(ev BounceEvent)
}
