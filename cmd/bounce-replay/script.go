package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

var errBadScript = errors.New("invalid replay script")

// Script is a deterministic sequence of spawns over a fixed surface
type Script struct {
	Width  float64      `toml:"width"`
	Height float64      `toml:"height"`
	Frames int          `toml:"frames"`
	Seed   int64        `toml:"seed"`
	Spawns []SpawnEvent `toml:"spawn"`
}

// SpawnEvent spawns Count bodies at (X, Y) before the given frame is stepped
type SpawnEvent struct {
	Frame int     `toml:"frame"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Count int     `toml:"count"`
}

func defaultScript() *Script {
	return &Script{Width: 800, Height: 600, Frames: 600, Seed: 1}
}

// LoadScript decodes a TOML replay script; unknown keys are rejected
func LoadScript(path string) (*Script, error) {
	s := defaultScript()
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", errBadScript, strings.Join(keys, ", "))
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// normalize validates bounds, defaults Count to 1 and orders spawns by frame (stable)
func (s *Script) normalize() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: surface %vx%v must be positive", errBadScript, s.Width, s.Height)
	}
	if s.Frames <= 0 {
		return fmt.Errorf("%w: frames %d must be positive", errBadScript, s.Frames)
	}
	for i := range s.Spawns {
		sp := &s.Spawns[i]
		if sp.Frame < 0 || sp.Frame >= s.Frames {
			return fmt.Errorf("%w: spawn %d at frame %d outside [0,%d)", errBadScript, i, sp.Frame, s.Frames)
		}
		if sp.Count < 0 {
			return fmt.Errorf("%w: spawn %d count %d is negative", errBadScript, i, sp.Count)
		}
		if sp.Count == 0 {
			sp.Count = 1
		}
	}
	sort.SliceStable(s.Spawns, func(i, j int) bool { return s.Spawns[i].Frame < s.Spawns[j].Frame })
	return nil
}
