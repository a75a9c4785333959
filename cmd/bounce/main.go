package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/bounce/audio"
	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/core"
	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/render"
	"github.com/lixenwraith/bounce/status"
	"github.com/lixenwraith/bounce/vmath"
)

var (
	configPath    = flag.String("config", "", "TOML config file")
	seedFlag      = flag.Int64("seed", 0, "Random seed; 0 uses config seed or the clock")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/bounce.log")
	fpsFlag       = flag.Int("fps", 0, "Frame rate; 0 uses the default (~60)")
	muteFlag      = flag.Bool("mute", false, "Disable audio")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := core.SetupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "bounce: stdout is not a terminal (use bounce-replay for headless runs)")
		os.Exit(1)
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bounce: %v\n", err)
		os.Exit(2)
	}
	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bounce: %v\n", err)
		os.Exit(2)
	}
	seed := resolveSeed(*seedFlag, cfg.Seed)
	log.Printf("config: model=%s merge=%s spawn=%s seed=%d", settings.Model, settings.Merge, settings.Spawn, seed)

	applyColorMode(*colorModeFlag)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashTerminal(screen)
	defer func() {
		core.SetCrashTerminal(nil)
		screen.Fini()
	}()
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	audioCfg := audio.LoadAudioConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}
	sound := audio.NewSoundManager(audioCfg)
	if err := sound.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	cols, rows := screen.Size()
	if cols == 0 || rows == 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cols, rows = w, h
		}
	}
	width, height := render.SurfaceSize(cols, rows)

	world := engine.NewWorld(settings, width, height, vmath.NewFastRand(uint64(seed)))
	sink := render.NewTerminalSink(screen)
	sched := engine.NewTickerScheduler(frameInterval(*fpsFlag))
	metrics := status.NewCollector(nil)
	loop := engine.NewLoop(world, sched, sink,
		engine.WithScoreSink(sink), engine.WithScoreSink(metrics),
		engine.WithObserver(sound), engine.WithObserver(metrics))
	sink.SetStatus(func() string { return statusText(loop, metrics) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Input polling blocks; events are handed to the scheduler goroutine, which owns the world
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if !sched.Post(func() { handleEvent(ev, loop, cancel) }) {
				log.Printf("input: event queue full, dropped %T", ev)
			}
		}
	})

	loop.Start()
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("scheduler: %v", err)
	}
	loop.Stop()

	stats := loop.Stats()
	log.Printf("exit: frame=%d bodies=%d merges=%d score=%.1f", stats.Frame, stats.Bodies, stats.Merges, stats.Score.Total())
	log.Printf("metrics: %s", metrics.Registry().Format())
}

// resolveSeed prefers the flag, then the config, then the clock
func resolveSeed(flagSeed, cfgSeed int64) int64 {
	switch {
	case flagSeed != 0:
		return flagSeed
	case cfgSeed != 0:
		return cfgSeed
	default:
		return time.Now().UnixNano()
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// applyColorMode steers tcell's color detection, which reads these variables at screen creation
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}

func handleEvent(ev tcell.Event, loop *engine.Loop, quit context.CancelFunc) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			quit()
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				quit()
			case ' ':
				paused := loop.TogglePause()
				log.Printf("input: paused=%v", paused)
			case '.':
				loop.StepOnce()
			case 'c':
				loop.Clear()
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return
		}
		col, row := ev.Position()
		x, y := render.CellToSurface(col, row)
		if y >= loop.World().Height {
			return
		}
		if _, err := loop.Spawn(x, y); err != nil {
			log.Printf("spawn at (%.1f,%.1f): %v", x, y, err)
		}

	case *tcell.EventResize:
		w, h := render.SurfaceSize(ev.Size())
		loop.Resize(w, h)
		log.Printf("resize: surface %.0fx%.0f", w, h)
	}
}

func statusText(loop *engine.Loop, metrics *status.Collector) string {
	s := loop.Stats()
	st := loop.World().Settings
	text := fmt.Sprintf("bodies %d │ merges %d │ frame %d │ fps %.0f │ %s/%s",
		s.Bodies, s.Merges, s.Frame, metrics.FPS(), st.Model, st.Merge)
	if tier := metrics.TopTier(); tier >= 0 {
		text += fmt.Sprintf(" │ tier %d", tier)
	}
	if s.Paused {
		text += " │ PAUSED"
	}
	return text + " │ click spawn · space pause · . step · c clear · q quit"
}
