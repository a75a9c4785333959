package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/bounce/parameter"
)

// ManualScheduler holds requested frames until Fire is called
// Used by tests and by frontends whose host calls back once per refresh (ebiten Update)
type ManualScheduler struct {
	pending []func()
}

// RequestFrame queues cb for the next Fire
func (s *ManualScheduler) RequestFrame(cb func()) {
	s.pending = append(s.pending, cb)
}

// Fire runs the callbacks queued before this call; callbacks they register wait for the next Fire
func (s *ManualScheduler) Fire() int {
	batch := s.pending
	s.pending = nil
	for _, cb := range batch {
		cb()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// TickerScheduler paces frames with a time.Ticker and serializes external events onto the same goroutine
// RequestFrame must be called from inside Run (i.e. from a frame or posted callback) or before Run starts
type TickerScheduler struct {
	interval time.Duration
	pending  func()
	events   chan func()
}

// NewTickerScheduler creates a scheduler firing at most once per interval; zero uses the default frame interval
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	return &TickerScheduler{
		interval: interval,
		events:   make(chan func(), parameter.EventQueueSize),
	}
}

// RequestFrame sets the callback for the next tick, replacing any not yet fired
func (s *TickerScheduler) RequestFrame(cb func()) {
	s.pending = cb
}

// Post queues fn to run on the scheduler goroutine between frames, safe from any goroutine
// Returns false if the queue is full and fn was dropped
func (s *TickerScheduler) Post(fn func()) bool {
	select {
	case s.events <- fn:
		return true
	default:
		return false
	}
}

// Run processes posted events and frame ticks until ctx is done
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.events:
			fn()
		case <-ticker.C:
			cb := s.pending
			s.pending = nil
			if cb != nil {
				cb()
			}
		}
	}
}
