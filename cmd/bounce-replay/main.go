package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/core"
)

var (
	configPath = flag.String("config", "", "TOML simulation config")
	framesFlag = flag.Int("frames", 0, "Override script frame count")
	seedFlag   = flag.Int64("seed", 0, "Override script seed")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/bounce.log")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] script.toml\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if logFile := core.SetupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "bounce-replay: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptPath string) error {
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}
	if *framesFlag > 0 {
		script.Frames = *framesFlag
		if err := script.normalize(); err != nil {
			return err
		}
	}
	if *seedFlag != 0 {
		script.Seed = *seedFlag
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	log.Printf("replay: %s frames=%d spawns=%d seed=%d", scriptPath, script.Frames, len(script.Spawns), script.Seed)
	res, err := Run(script, settings)
	if err != nil {
		return err
	}

	fmt.Println(Summary(filepath.Base(scriptPath), res, settings))
	return nil
}
