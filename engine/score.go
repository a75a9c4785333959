package engine

import (
	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/core"
	"github.com/lixenwraith/bounce/parameter"
	"github.com/lixenwraith/bounce/physics"
)

// Score is the derived scalar for a body population
// Recomputed from scratch every frame, never stored on bodies
type Score struct {
	Radii float64 // Sum of radii
	Bonus float64 // Ladder bonus: 10 * (1 + tier index) per body sitting on a tier
}

// Total returns Radii + Bonus
func (s Score) Total() float64 {
	return s.Radii + s.Bonus
}

// add accounts one body of radius r
func (s *Score) add(r float64, ladder *physics.SizeLadder) {
	s.Radii += r
	if i, ok := ladder.Index(r); ok {
		s.Bonus += float64(parameter.MergeBonusPerTier * (1 + i))
	}
}

// ScoreRadii computes the score for a list of radii against a ladder (nil ladder: no bonus)
func ScoreRadii(radii []float64, ladder *physics.SizeLadder) Score {
	var s Score
	for _, r := range radii {
		s.add(r, ladder)
	}
	return s
}

// ComputeScore scores the live bodies of a world
func ComputeScore(w *World) Score {
	var s Score
	ladder := w.Settings.Ladder
	w.Bodies.Each(func(_ core.Entity, b *component.Body) {
		s.add(b.Radius, ladder)
	})
	return s
}
