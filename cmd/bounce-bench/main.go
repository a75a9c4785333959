package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/render"
	"github.com/lixenwraith/bounce/vmath"
)

var (
	duration = flag.Duration("duration", 10*time.Second, "Benchmark duration")
	bodies   = flag.Int("bodies", 200, "Population size (held constant: merging and culling off)")
	sinkName = flag.String("sink", "recorder", "Sink: recorder|terminal (simulated screen)")
	cols     = flag.Int("cols", 160, "Simulated terminal columns")
	rows     = flag.Int("rows", 50, "Simulated terminal rows")
	seed     = flag.Uint64("seed", 1, "Random seed")
)

// timedSink measures time spent between Clear and Present
type timedSink struct {
	engine.RenderSink
	start time.Time
	total time.Duration
}

func (s *timedSink) Clear(w, h float64) {
	s.start = time.Now()
	s.RenderSink.Clear(w, h)
}

func (s *timedSink) Present() {
	s.RenderSink.Present()
	s.total += time.Since(s.start)
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var inner engine.RenderSink
	width, height := render.SurfaceSize(*cols, *rows)
	switch *sinkName {
	case "recorder":
		inner = render.NewRecorder()
	case "terminal":
		screen := tcell.NewSimulationScreen("UTF-8")
		if err := screen.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "simulated screen: %v\n", err)
			os.Exit(1)
		}
		defer screen.Fini()
		screen.SetSize(*cols, *rows)
		inner = render.NewTerminalSink(screen)
	default:
		fmt.Fprintf(os.Stderr, "unknown sink %q\n", *sinkName)
		os.Exit(2)
	}

	settings := engine.DefaultSettings()
	settings.Merge = physics.MergeNone
	settings.MaxBodies = 0

	world := engine.NewWorld(settings, width, height, vmath.NewFastRand(*seed))
	populate(world, *bodies)

	sink := &timedSink{RenderSink: inner}
	sched := &engine.ManualScheduler{}
	loop := engine.NewLoop(world, sched, sink)

	var frames int64
	var frameTotal time.Duration
	start := time.Now()

	loop.Start()
	for time.Since(start) < *duration && ctx.Err() == nil {
		t0 := time.Now()
		sched.Fire()
		frameTotal += time.Since(t0)
		frames++
	}
	loop.Stop()

	elapsed := time.Since(start)
	if frames == 0 {
		fmt.Println("No frames completed")
		return
	}

	fmt.Printf("Benchmark Results:\n")
	fmt.Printf("  Surface:      %.0fx%.0f (%s sink)\n", width, height, *sinkName)
	fmt.Printf("  Bodies:       %d\n", world.Len())
	fmt.Printf("  Total Frames: %d\n", frames)
	fmt.Printf("  Total Time:   %v\n", elapsed)
	fmt.Printf("  Avg FPS:      %.2f\n", float64(frames)/elapsed.Seconds())
	fmt.Printf("  Avg Frame:    %v\n", frameTotal/time.Duration(frames))
	fmt.Printf("  Avg Draw:     %v\n", sink.total/time.Duration(frames))
	fmt.Printf("  Avg Step:     %v\n", (frameTotal-sink.total)/time.Duration(frames))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("  Total Alloc:  %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:      %d\n", m.Mallocs)
}

// populate lays n bodies on a grid one spawn diameter apart
// Rows below the surface are clamped to the floor by the first step
func populate(w *engine.World, n int) {
	sp := engine.NewSpawner(w)
	r := w.Settings.RadiusMax
	for _, s := range w.Settings.SpawnSizes {
		r = max(r, s)
	}
	cell := 2 * r
	perRow := max(int(w.Width/cell), 1)
	for i := 0; i < n; i++ {
		x := r + float64(i%perRow)*cell
		y := r + float64(i/perRow)*cell
		sp.Spawn(x, y)
	}
}
