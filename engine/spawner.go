package engine

import (
	"errors"

	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/core"
	"github.com/lixenwraith/bounce/vmath"
)

// ErrPopulationFull is returned by Spawn when the live set is at Settings.MaxBodies
var ErrPopulationFull = errors.New("population full")

// Spawner turns spawn requests into bodies with randomized radius, velocity and color
type Spawner struct {
	world *World
}

// NewSpawner creates a spawner inserting into w
func NewSpawner(w *World) *Spawner {
	return &Spawner{world: w}
}

// Radius draws a radius according to the spawn policy
// Discrete policy with no sizes configured falls back to the continuous range
func (s *Spawner) Radius() float64 {
	st := &s.world.Settings
	rng := s.world.Rand()

	if st.Spawn == SpawnDiscrete && len(st.SpawnSizes) > 0 {
		return st.SpawnSizes[rng.Intn(len(st.SpawnSizes))]
	}
	return vmath.Range(rng, st.RadiusMin, st.RadiusMax)
}

// NewBody builds a randomized body at (x, y) without inserting it
// Draw order is radius, vx, vy, hue; replay depends on it
func (s *Spawner) NewBody(x, y float64) component.Body {
	st := &s.world.Settings
	rng := s.world.Rand()

	r := s.Radius()
	vx := vmath.Range(rng, -st.SpawnSpeed, st.SpawnSpeed)
	vy := vmath.Range(rng, -st.SpawnSpeed, st.SpawnSpeed)

	return component.Body{
		Pos:         vmath.Vec2{X: x, Y: y},
		Vel:         vmath.Vec2{X: vx, Y: vy},
		Radius:      r,
		Color:       s.world.RandomColor(),
		Gravity:     st.Gravity,
		Restitution: st.Restitution,
	}
}

// Spawn inserts a new body at (x, y); the position is not validated against surface bounds
func (s *Spawner) Spawn(x, y float64) (core.Entity, error) {
	if limit := s.world.Settings.MaxBodies; limit > 0 && s.world.Len() >= limit {
		return core.NoEntity, ErrPopulationFull
	}
	return s.world.Bodies.Insert(s.NewBody(x, y)), nil
}
