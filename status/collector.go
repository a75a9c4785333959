package status

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/bounce/engine"
)

// Metric keys
const (
	KeyMerges    = "merges"
	KeyFloorHits = "floor_hits"
	KeyTopTier   = "top_tier"
	KeyScore     = "score"
	KeyPeakScore = "peak_score"
	KeyImpact    = "peak_impact"
	KeyFPS       = "fps"
)

// fpsSmoothing is the weight of the newest frame in the FPS moving average
const fpsSmoothing = 0.1

// Collector turns loop events and scores into registry metrics
// It implements engine.Observer and engine.ScoreSink
type Collector struct {
	reg *Registry

	merges    *atomic.Int64
	floorHits *atomic.Int64
	topTier   *atomic.Int64
	score     *Gauge
	peakScore *Gauge
	impact    *Gauge
	fps       *Gauge

	now       func() time.Time
	lastFrame time.Time
}

// NewCollector registers its metrics in reg; nil reg creates a private registry
func NewCollector(reg *Registry) *Collector {
	if reg == nil {
		reg = NewRegistry()
	}
	c := &Collector{
		reg:       reg,
		merges:    reg.Counters.Get(KeyMerges),
		floorHits: reg.Counters.Get(KeyFloorHits),
		topTier:   reg.Counters.Get(KeyTopTier),
		score:     reg.Gauges.Get(KeyScore),
		peakScore: reg.Gauges.Get(KeyPeakScore),
		impact:    reg.Gauges.Get(KeyImpact),
		fps:       reg.Gauges.Get(KeyFPS),
		now:       time.Now,
	}
	c.topTier.Store(-1)
	return c
}

// Registry returns the backing registry
func (c *Collector) Registry() *Registry {
	return c.reg
}

func (c *Collector) OnMerge(ev engine.MergeEvent) {
	c.merges.Add(1)
	if !ev.OnLadder {
		return
	}
	for {
		cur := c.topTier.Load()
		if int64(ev.Tier) <= cur || c.topTier.CompareAndSwap(cur, int64(ev.Tier)) {
			return
		}
	}
}

func (c *Collector) OnFloorBounce(ev engine.BounceEvent) {
	c.floorHits.Add(1)
	c.impact.Max(ev.Speed)
}

// PublishScore records the score and derives frame rate from the interval since the previous call
func (c *Collector) PublishScore(score float64) {
	c.score.Set(score)
	c.peakScore.Max(score)

	now := c.now()
	if !c.lastFrame.IsZero() {
		if dt := now.Sub(c.lastFrame).Seconds(); dt > 0 {
			inst := 1 / dt
			prev := c.fps.Load()
			if prev == 0 {
				c.fps.Set(inst)
			} else {
				c.fps.Set(prev + (inst-prev)*fpsSmoothing)
			}
		}
	}
	c.lastFrame = now
}

// FPS returns the smoothed frame rate
func (c *Collector) FPS() float64 {
	return c.fps.Load()
}

// TopTier returns the highest ladder tier produced by a merge, or -1
func (c *Collector) TopTier() int {
	return int(c.topTier.Load())
}

// FloorHits returns the number of floor contacts seen
func (c *Collector) FloorHits() int64 {
	return c.floorHits.Load()
}

// PeakScore returns the highest score published so far
func (c *Collector) PeakScore() float64 {
	return c.peakScore.Load()
}
