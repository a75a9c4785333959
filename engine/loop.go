package engine

import (
	"log"

	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/core"
)

// RenderSink is the drawing target; Clear starts a frame, Present ends it
type RenderSink interface {
	Clear(width, height float64)
	DrawCircle(x, y, radius float64, c component.Color)
	Present()
}

// ScoreSink receives the score once per frame
type ScoreSink interface {
	PublishScore(score float64)
}

// FrameScheduler delivers a one-shot callback on the next display refresh
// Callers must re-register for every frame
type FrameScheduler interface {
	RequestFrame(cb func())
}

// Stats is a point-in-time view of the loop for status displays
type Stats struct {
	Frame  uint64
	Bodies int
	Score  Score
	Merges uint64
	Paused bool
}

// Loop drives a World: one Step, draw pass and score publish per scheduled frame
type Loop struct {
	world   *World
	spawner *Spawner
	sched   FrameScheduler
	sink    RenderSink

	scoreSinks []ScoreSink
	observers  []Observer

	running  bool
	gen      uint64 // bumped by Start; callbacks from earlier runs compare unequal
	paused   bool
	stepOnce bool

	frame     uint64
	merges    uint64
	lastScore Score
}

// LoopOption configures optional collaborators
type LoopOption func(*Loop)

// WithScoreSink publishes the score to s every frame; repeatable, nil is ignored
func WithScoreSink(s ScoreSink) LoopOption {
	return func(l *Loop) {
		if s != nil {
			l.scoreSinks = append(l.scoreSinks, s)
		}
	}
}

// WithObserver forwards merge and bounce events to o; repeatable, nil is ignored
func WithObserver(o Observer) LoopOption {
	return func(l *Loop) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// NewLoop creates a loop; sched and sink are required
func NewLoop(w *World, sched FrameScheduler, sink RenderSink, opts ...LoopOption) *Loop {
	if sched == nil || sink == nil {
		panic("engine: NewLoop requires a scheduler and a render sink")
	}
	l := &Loop{
		world:   w,
		spawner: NewSpawner(w),
		sched:   sched,
		sink:    sink,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start registers the first frame; each frame re-registers the next
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.gen++
	log.Printf("loop: start (%d bodies, %.0fx%.0f)", l.world.Len(), l.world.Width, l.world.Height)
	l.request(l.gen)
}

// Stop ends re-registration; a callback already handed to the scheduler becomes a no-op,
// including after a later Start
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	log.Printf("loop: stop at frame %d", l.frame)
}

// Running reports whether the loop is registered with its scheduler
func (l *Loop) Running() bool {
	return l.running
}

func (l *Loop) request(gen uint64) {
	l.sched.RequestFrame(func() { l.tick(gen) })
}

func (l *Loop) tick(gen uint64) {
	if !l.running || gen != l.gen {
		return
	}
	l.Frame()
	if l.running && gen == l.gen {
		l.request(gen)
	}
}

// Frame runs one frame synchronously: step (unless paused), draw, publish score, present
func (l *Loop) Frame() {
	if !l.paused || l.stepOnce {
		l.stepOnce = false
		res := Step(l.world)
		l.merges += uint64(len(res.Merges))
		l.notify(res)
	}

	l.sink.Clear(l.world.Width, l.world.Height)
	l.world.Bodies.Each(func(_ core.Entity, b *component.Body) {
		l.sink.DrawCircle(b.Pos.X, b.Pos.Y, b.Radius, b.Color)
	})

	// Scores reach sinks before Present
	l.lastScore = ComputeScore(l.world)
	total := l.lastScore.Total()
	for _, s := range l.scoreSinks {
		s.PublishScore(total)
	}
	l.sink.Present()
	l.frame++
}

func (l *Loop) notify(res StepResult) {
	for _, o := range l.observers {
		for _, ev := range res.Merges {
			o.OnMerge(ev)
		}
		for _, ev := range res.Bounces {
			o.OnFloorBounce(ev)
		}
	}
}

// Spawn inserts a randomized body at a surface coordinate
func (l *Loop) Spawn(x, y float64) (core.Entity, error) {
	return l.spawner.Spawn(x, y)
}

// Resize forwards new surface bounds to the world
func (l *Loop) Resize(width, height float64) {
	l.world.Resize(width, height)
}

// TogglePause flips the paused state and returns the new value
func (l *Loop) TogglePause() bool {
	l.paused = !l.paused
	return l.paused
}

// Paused reports whether stepping is suspended
func (l *Loop) Paused() bool {
	return l.paused
}

// StepOnce advances exactly one step on the next frame while paused
func (l *Loop) StepOnce() {
	l.stepOnce = true
}

// Clear removes every body
func (l *Loop) Clear() {
	l.world.Clear()
}

// World returns the driven world
func (l *Loop) World() *World {
	return l.world
}

// Stats returns counters as of the last completed frame
func (l *Loop) Stats() Stats {
	return Stats{
		Frame:  l.frame,
		Bodies: l.world.Len(),
		Score:  l.lastScore,
		Merges: l.merges,
		Paused: l.paused,
	}
}
