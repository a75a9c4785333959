package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/bounce/audio"
	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/core"
	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/render"
	"github.com/lixenwraith/bounce/vmath"
)

const (
	defaultWidth  = 1024
	defaultHeight = 720
)

var (
	configPath = flag.String("config", "", "TOML config file")
	seedFlag   = flag.Int64("seed", 0, "Random seed; 0 uses config seed or the clock")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/bounce.log")
	widthFlag  = flag.Int("width", defaultWidth, "Window width")
	heightFlag = flag.Int("height", defaultHeight, "Window height")
	muteFlag   = flag.Bool("mute", false, "Disable audio")
)

func main() {
	flag.Parse()

	if logFile := core.SetupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bounce-gui: %v\n", err)
		os.Exit(2)
	}
	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bounce-gui: %v\n", err)
		os.Exit(2)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	audioCfg := audio.LoadAudioConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}
	sound := audio.NewSoundManager(audioCfg)
	if err := sound.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	world := engine.NewWorld(settings, float64(*widthFlag), float64(*heightFlag), vmath.NewFastRand(uint64(seed)))
	game := newGame(world, sound)

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("bounce")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game.loop.Start()
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("ebiten: %v", err)
		fmt.Fprintf(os.Stderr, "bounce-gui: %v\n", err)
		os.Exit(1)
	}
	game.loop.Stop()
	log.Printf("metrics: %s", game.metrics.Registry().Format())
}
