package engine

import (
	"testing"

	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

func TestScoreWithoutLadderMatches(t *testing.T) {
	ladder := physics.MustSizeLadder(5, 50)
	s := ScoreRadii([]float64{10, 14, 20}, ladder)

	if s.Radii != 44 {
		t.Errorf("Expected radii sum 44, got %v", s.Radii)
	}
	if s.Bonus != 0 {
		t.Errorf("Expected zero bonus, got %v", s.Bonus)
	}
	if s.Total() != 44 {
		t.Errorf("Expected total 44, got %v", s.Total())
	}
}

func TestScoreLadderBonus(t *testing.T) {
	ladder := physics.MustSizeLadder(10, 14, 20)
	s := ScoreRadii([]float64{10, 14, 20, 20, 13}, ladder)

	// 10*(1+0) + 10*(1+1) + 2 * 10*(1+2)
	if s.Bonus != 90 {
		t.Errorf("Expected bonus 90, got %v", s.Bonus)
	}
	if s.Total() != 77+90 {
		t.Errorf("Expected total %v, got %v", 77+90, s.Total())
	}
}

func TestScoreNilLadder(t *testing.T) {
	s := ScoreRadii([]float64{1, 2, 3}, nil)
	if s.Total() != 6 {
		t.Errorf("Expected 6, got %v", s.Total())
	}
}

func TestScoreEmpty(t *testing.T) {
	if s := ScoreRadii(nil, physics.MustSizeLadder(10)); s.Total() != 0 {
		t.Errorf("Expected 0 for empty set, got %v", s.Total())
	}
}

func TestComputeScoreMatchesRadii(t *testing.T) {
	w := NewWorld(DefaultSettings(), 800, 600, vmath.NewFastRand(11))
	sp := NewSpawner(w)
	for i := 0; i < 20; i++ {
		sp.Spawn(float64(i*30), 100)
	}

	var radii []float64
	for _, b := range w.Bodies.Snapshot() {
		radii = append(radii, b.Radius)
	}

	got := ComputeScore(w)
	want := ScoreRadii(radii, w.Settings.Ladder)
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestComputeScoreIsSideEffectFree(t *testing.T) {
	w := NewWorld(DefaultSettings(), 800, 600, vmath.NewFastRand(12))
	sp := NewSpawner(w)
	for i := 0; i < 5; i++ {
		sp.Spawn(float64(100+i*50), 100)
	}
	before := w.Bodies.Snapshot()

	s1 := ComputeScore(w)
	s2 := ComputeScore(w)
	if s1 != s2 {
		t.Errorf("Expected idempotent score, got %+v then %+v", s1, s2)
	}

	after := w.Bodies.Snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Body %d changed while scoring", i)
		}
	}
}
