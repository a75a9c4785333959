package engine

import (
	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/vmath"
)

// World is the explicitly owned simulation state: body set, surface bounds, settings and random source
// Not safe for concurrent use; all access happens on the frame driver's goroutine
type World struct {
	Bodies   *BodyStore
	Settings Settings

	Width  float64
	Height float64

	rng vmath.Source
}

// NewWorld creates a world over a width x height surface; rng must not be nil
func NewWorld(settings Settings, width, height float64, rng vmath.Source) *World {
	if rng == nil {
		panic("engine: NewWorld requires a random source")
	}
	return &World{
		Bodies:   NewBodyStore(),
		Settings: settings,
		Width:    width,
		Height:   height,
		rng:      rng,
	}
}

// Resize updates surface bounds; takes effect on the next step
func (w *World) Resize(width, height float64) {
	w.Width = width
	w.Height = height
}

// Rand returns the world's random source
func (w *World) Rand() vmath.Source {
	return w.rng
}

// RandomColor samples a hue uniformly over [0,360) at the default saturation/lightness
func (w *World) RandomColor() component.Color {
	return component.HueColor(vmath.Range(w.rng, 0, 360))
}

// Len returns the live body count
func (w *World) Len() int {
	return w.Bodies.Len()
}

// Clear removes every body
func (w *World) Clear() {
	w.Bodies.Clear()
}
