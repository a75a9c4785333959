package engine

import (
	"math"
	"testing"

	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/core"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

// zeroGravityWorld has a large surface so bodies in the middle never touch a boundary
func zeroGravityWorld(merge physics.MergePolicy) *World {
	s := DefaultSettings()
	s.Gravity = 0
	s.Merge = merge
	s.Ladder = physics.MustSizeLadder(10, 14, 20)
	return NewWorld(s, 10000, 10000, vmath.NewFastRand(99))
}

func insert(w *World, x, y, vx, vy, r float64) core.Entity {
	return w.Bodies.Insert(component.Body{
		Pos:         vmath.Vec2{X: x, Y: y},
		Vel:         vmath.Vec2{X: vx, Y: vy},
		Radius:      r,
		Color:       component.HueColor(200),
		Gravity:     w.Settings.Gravity,
		Restitution: w.Settings.Restitution,
	})
}

func onlyBody(t *testing.T, w *World) *component.Body {
	t.Helper()
	if w.Len() != 1 {
		t.Fatalf("Expected exactly 1 body, got %d", w.Len())
	}
	_, b, _ := w.Bodies.Slot(0)
	return b
}

func TestIsolatedBodyKeepsRadiusAndColor(t *testing.T) {
	w := NewWorld(DefaultSettings(), 400, 300, vmath.NewFastRand(1))
	e := insert(w, 200, 50, 3, -2, 17)
	before, _ := w.Bodies.Get(e)
	color := before.Color

	for i := 0; i < 2000; i++ {
		Step(w)
		b, ok := w.Bodies.Get(e)
		if !ok {
			t.Fatalf("Frame %d: isolated body disappeared", i)
		}
		if b.Radius != 17 || b.Color != color {
			t.Fatalf("Frame %d: radius/color changed to %v/%+v", i, b.Radius, b.Color)
		}
	}
}

func TestFloorContainment(t *testing.T) {
	w := NewWorld(DefaultSettings(), 400, 300, vmath.NewFastRand(8))
	w.Settings.Merge = physics.MergeNone
	sp := NewSpawner(w)
	for i := 0; i < 25; i++ {
		sp.Spawn(float64(20+i*15), float64(10+i*5))
	}

	for frame := 0; frame < 1500; frame++ {
		Step(w)
		w.Bodies.Each(func(e core.Entity, b *component.Body) {
			if b.Bottom() > w.Height+math.Abs(b.Vel.Y)+1e-9 {
				t.Fatalf("Frame %d: body %d bottom %v exceeds floor %v by more than |vy|=%v",
					frame, e, b.Bottom(), w.Height, math.Abs(b.Vel.Y))
			}
			if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
				t.Fatalf("Frame %d: body %d has non-finite state %+v", frame, e, b)
			}
		})
	}
}

func TestMergeVelocityIsAverage(t *testing.T) {
	w := zeroGravityWorld(physics.MergeArea)
	insert(w, 5000, 5000, 2, 4, 10)
	insert(w, 5010, 5000, -1, 1, 10)

	res := Step(w)

	if len(res.Merges) != 1 {
		t.Fatalf("Expected 1 merge, got %d", len(res.Merges))
	}
	b := onlyBody(t, w)
	want := vmath.Vec2{X: 0.5, Y: 2.5}
	if b.Vel != want {
		t.Errorf("Expected merged velocity %+v, got %+v", want, b.Vel)
	}
	// Midpoint then one tick of integration
	if b.Pos != (vmath.Vec2{X: 5005.5, Y: 5002.5}) {
		t.Errorf("Expected position (5005.5,5002.5), got %+v", b.Pos)
	}
}

func TestAreaMergeRadius(t *testing.T) {
	w := zeroGravityWorld(physics.MergeArea)
	insert(w, 5000, 5000, 0, 0, 12)
	insert(w, 5005, 5000, 0, 0, 12)

	Step(w)

	b := onlyBody(t, w)
	if !vmath.ApproxEqual(b.Radius, 12*math.Sqrt2, 1e-9) {
		t.Errorf("Expected radius %v, got %v", 12*math.Sqrt2, b.Radius)
	}
}

func TestLadderMergePromotes(t *testing.T) {
	w := zeroGravityWorld(physics.MergeLadder)
	insert(w, 5000, 5000, 0, 0, 10)
	insert(w, 5005, 5000, 0, 0, 10)

	res := Step(w)

	b := onlyBody(t, w)
	if b.Radius != 14 {
		t.Errorf("Expected next tier 14, got %v", b.Radius)
	}
	if !res.Merges[0].OnLadder || res.Merges[0].Tier != 1 {
		t.Errorf("Expected merge event on tier 1, got %+v", res.Merges[0])
	}

	// The merge color is the first draw from the world source (seed 99)
	want := component.HueColor(vmath.Range(vmath.NewFastRand(99), 0, 360))
	if b.Color != want {
		t.Errorf("Expected color %+v from the world source, got %+v", want, b.Color)
	}
	if b.Color.H == 200 {
		t.Error("Expected a fresh hue, got the inputs' hue 200")
	}
}

func TestLadderTopTierMergeClamps(t *testing.T) {
	w := zeroGravityWorld(physics.MergeLadder)
	a := insert(w, 5000, 5000, 1, 0, 20)
	b := insert(w, 5010, 5000, -1, 0, 20)

	res := Step(w)

	m := onlyBody(t, w)
	if m.Radius != 20 {
		t.Errorf("Expected top tier 20 to be kept, got %v", m.Radius)
	}
	if w.Bodies.Has(a) || w.Bodies.Has(b) {
		t.Error("Expected both inputs removed")
	}
	if len(res.Merges) != 1 {
		t.Fatalf("Expected 1 merge event, got %d", len(res.Merges))
	}
	if !w.Bodies.Has(res.Merges[0].Survivor) {
		t.Error("Expected survivor to be live")
	}
	if res.Merges[0].Consumed != [2]core.Entity{a, b} {
		t.Errorf("Expected consumed %v, got %v", [2]core.Entity{a, b}, res.Merges[0].Consumed)
	}
}

func TestMergeReducesCountByOne(t *testing.T) {
	w := zeroGravityWorld(physics.MergeLadder)
	insert(w, 1000, 1000, 0, 0, 10)
	insert(w, 1005, 1000, 0, 0, 10)
	insert(w, 3000, 3000, 0, 0, 14)
	insert(w, 7000, 7000, 0, 0, 20)

	before := w.Len()
	res := Step(w)
	if len(res.Merges) != 1 {
		t.Fatalf("Expected 1 merge, got %d", len(res.Merges))
	}
	if w.Len() != before-1 {
		t.Errorf("Expected count %d after merge, got %d", before-1, w.Len())
	}
}

func TestRemovedBodiesNotReusedInSamePass(t *testing.T) {
	w := zeroGravityWorld(physics.MergeLadder)
	a := insert(w, 5000, 5000, 0, 0, 10)
	b := insert(w, 5004, 5000, 0, 0, 10)
	c := insert(w, 5002, 5003, 0, 0, 10)

	res := Step(w)

	// a+b merge first; c overlaps both but they are gone for the rest of the pass
	if len(res.Merges) != 1 {
		t.Fatalf("Expected exactly 1 merge in the pass, got %d", len(res.Merges))
	}
	if res.Merges[0].Consumed != [2]core.Entity{a, b} {
		t.Errorf("Expected a and b consumed, got %v", res.Merges[0].Consumed)
	}
	if !w.Bodies.Has(c) {
		t.Error("Expected c to survive the pass")
	}
	if w.Len() != 2 {
		t.Errorf("Expected 2 bodies (survivor + c), got %d", w.Len())
	}
}

func TestElasticSeparationInStep(t *testing.T) {
	w := zeroGravityWorld(physics.MergeNone)
	a := insert(w, 5000, 5000, 0, 0, 10)
	b := insert(w, 5012, 5000, 0, 0, 10)

	res := Step(w)

	if res.Collisions != 1 {
		t.Errorf("Expected 1 collision, got %d", res.Collisions)
	}
	ba, _ := w.Bodies.Get(a)
	bb, _ := w.Bodies.Get(b)
	if d := vmath.Distance(ba.Pos, bb.Pos); !vmath.ApproxEqual(d, 20, 1e-9) {
		t.Errorf("Expected contact distance 20, got %v", d)
	}
}

func TestUnequalRadiiDoNotMerge(t *testing.T) {
	w := zeroGravityWorld(physics.MergeLadder)
	insert(w, 5000, 5000, 1, 0, 10)
	insert(w, 5010, 5000, -1, 0, 14)

	res := Step(w)

	if len(res.Merges) != 0 {
		t.Errorf("Expected no merge, got %d", len(res.Merges))
	}
	if w.Len() != 2 {
		t.Errorf("Expected 2 bodies, got %d", w.Len())
	}
}

func TestMergeToleranceZeroIsExact(t *testing.T) {
	w := zeroGravityWorld(physics.MergeArea)
	w.Settings.MergeTolerance = 0
	insert(w, 5000, 5000, 0, 0, 10)
	insert(w, 5005, 5000, 0, 0, 10+1e-12)

	Step(w)
	if w.Len() != 2 {
		t.Errorf("Expected exact comparison to reject near-equal radii, got %d bodies", w.Len())
	}
}

func TestCoincidentCentersStayFinite(t *testing.T) {
	w := zeroGravityWorld(physics.MergeNone)
	insert(w, 5000, 5000, 1, 1, 10)
	insert(w, 5000, 5000, -1, 0, 14)

	for i := 0; i < 10; i++ {
		Step(w)
	}
	w.Bodies.Each(func(e core.Entity, b *component.Body) {
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
			t.Errorf("Body %d has non-finite state %+v", e, b)
		}
	})
}

func TestFloorBounceEvents(t *testing.T) {
	s := DefaultSettings()
	w := NewWorld(s, 200, 100, vmath.NewFastRand(1))
	e := insert(w, 100, 85, 0, 8, 10)

	res := Step(w)

	if len(res.Bounces) != 1 {
		t.Fatalf("Expected 1 floor bounce, got %d", len(res.Bounces))
	}
	ev := res.Bounces[0]
	if ev.Entity != e || !ev.Flags.Has(physics.BounceFloor) {
		t.Errorf("Unexpected bounce event %+v", ev)
	}
	if !vmath.ApproxEqual(ev.Speed, 8+s.Gravity, 1e-12) {
		t.Errorf("Expected impact speed %v, got %v", 8+s.Gravity, ev.Speed)
	}
}

func TestCullOffscreen(t *testing.T) {
	w := zeroGravityWorld(physics.MergeNone)
	w.Settings.CullOffscreen = true
	insert(w, -500, 500, 0, 0, 10)
	keep := insert(w, 500, 500, 0, 0, 10)

	res := Step(w)
	if res.Culled != 1 {
		t.Errorf("Expected 1 culled, got %d", res.Culled)
	}
	if w.Len() != 1 || !w.Bodies.Has(keep) {
		t.Error("Expected only the on-surface body to remain")
	}
}

func TestResizeTakesEffect(t *testing.T) {
	w := NewWorld(DefaultSettings(), 400, 400, vmath.NewFastRand(1))
	e := insert(w, 200, 190, 0, 0, 10)

	w.Resize(400, 195)
	Step(w)

	b, _ := w.Bodies.Get(e)
	if b.Bottom() > 195 {
		t.Errorf("Expected body clamped above new floor 195, bottom=%v", b.Bottom())
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []component.Body {
		w := NewWorld(DefaultSettings(), 640, 480, vmath.NewFastRand(2024))
		sp := NewSpawner(w)
		for frame := 0; frame < 400; frame++ {
			if frame%10 == 0 {
				sp.Spawn(float64(50+frame), 40)
			}
			Step(w)
		}
		return w.Bodies.Snapshot()
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("Replay population differs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Replay body %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
