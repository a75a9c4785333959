package engine

import (
	"math"

	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/core"
	"github.com/lixenwraith/bounce/physics"
)

// StepResult summarizes one simulation step
type StepResult struct {
	Merges     []MergeEvent
	Bounces    []BounceEvent
	Collisions int
	Culled     int
}

type pendingMerge struct {
	body     component.Body
	consumed [2]core.Entity
}

// Step advances the world one tick
//  1. pair scan over live slots (i < j): merge or elastic resolution; merged inputs are tombstoned at once
//     so no later pair in the same pass sees them
//  2. compaction, then insertion of merge survivors
//  3. integration of every live body (gravity, floor, walls, p += v), optional culling
//
// All collision resolution for a frame completes before any integration
func Step(w *World) StepResult {
	var res StepResult
	st := &w.Settings
	store := w.Bodies

	var born []pendingMerge

	n := store.Slots()
	for i := 0; i < n; i++ {
		ei, a, alive := store.Slot(i)
		if !alive {
			continue
		}
		for j := i + 1; j < n; j++ {
			ej, b, alive := store.Slot(j)
			if !alive {
				continue
			}

			c, hit := physics.Overlapping(a, b)
			if !hit {
				continue
			}

			if st.Merge != physics.MergeNone && physics.SameSize(a.Radius, b.Radius, st.MergeTolerance) {
				r := physics.MergedRadius(st.Merge, st.Ladder, a.Radius, b.Radius)
				born = append(born, pendingMerge{
					body:     physics.Merge(a, b, r, w.RandomColor()),
					consumed: [2]core.Entity{ei, ej},
				})
				store.Kill(ei)
				store.Kill(ej)
				break
			}

			physics.Separate(a, b, c)
			physics.ExchangeVelocities(a, b, c.Normal, st.Model)
			res.Collisions++
		}
	}

	store.Compact()
	for _, p := range born {
		id := store.Insert(p.body)
		tier, onLadder := st.Ladder.Index(p.body.Radius)
		res.Merges = append(res.Merges, MergeEvent{
			Survivor: id,
			Consumed: p.consumed,
			Pos:      p.body.Pos,
			Radius:   p.body.Radius,
			Tier:     tier,
			OnLadder: onLadder,
		})
	}

	store.Each(func(e core.Entity, b *component.Body) {
		impact := math.Abs(b.Vel.Y + b.Gravity)
		hit := physics.Integrate(b, w.Width, w.Height)
		if hit.Has(physics.BounceFloor) {
			res.Bounces = append(res.Bounces, BounceEvent{
				Entity: e,
				Flags:  hit,
				Pos:    b.Pos,
				Speed:  impact,
			})
		}
		if st.CullOffscreen && physics.OutOfBounds(b, w.Width, w.Height) {
			store.Kill(e)
		}
	})
	res.Culled = store.Compact()

	return res
}
