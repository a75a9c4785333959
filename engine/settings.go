package engine

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/bounce/parameter"
	"github.com/lixenwraith/bounce/physics"
)

// SpawnPolicy selects how spawned radii are drawn
type SpawnPolicy uint8

const (
	// SpawnContinuous draws radius uniformly from [RadiusMin, RadiusMax)
	SpawnContinuous SpawnPolicy = iota
	// SpawnDiscrete draws radius uniformly from SpawnSizes
	SpawnDiscrete
)

func (p SpawnPolicy) String() string {
	switch p {
	case SpawnContinuous:
		return "continuous"
	case SpawnDiscrete:
		return "discrete"
	default:
		return fmt.Sprintf("SpawnPolicy(%d)", p)
	}
}

// ParseSpawnPolicy maps a config string to a policy
func ParseSpawnPolicy(s string) (SpawnPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous", "range":
		return SpawnContinuous, nil
	case "", "discrete":
		return SpawnDiscrete, nil
	}
	return 0, fmt.Errorf("unknown spawn policy %q", s)
}

// Settings are the typed simulation parameters owned by a World
type Settings struct {
	Gravity     float64
	Restitution float64

	Model          physics.CollisionModel
	Merge          physics.MergePolicy
	MergeTolerance float64
	Ladder         *physics.SizeLadder

	Spawn      SpawnPolicy
	RadiusMin  float64
	RadiusMax  float64
	SpawnSizes []float64
	SpawnSpeed float64

	// MaxBodies caps the live set; 0 means unlimited
	MaxBodies     int
	CullOffscreen bool
}

// DefaultSettings returns the compiled-in defaults: ladder merging, discrete spawn sizes from the ladder's smallest tiers
func DefaultSettings() Settings {
	ladder := physics.MustSizeLadder(parameter.Ladder...)
	return Settings{
		Gravity:        parameter.Gravity,
		Restitution:    parameter.Restitution,
		Model:          physics.ModelDecompose,
		Merge:          physics.MergeLadder,
		MergeTolerance: parameter.MergeTolerance,
		Ladder:         ladder,
		Spawn:          SpawnDiscrete,
		RadiusMin:      parameter.SpawnRadiusMin,
		RadiusMax:      parameter.SpawnRadiusMax,
		SpawnSizes:     LadderSpawnSizes(ladder, parameter.SpawnLadderTiers),
		SpawnSpeed:     parameter.SpawnSpeed,
		MaxBodies:      parameter.MaxBodies,
	}
}

// LadderSpawnSizes returns the n smallest tiers of a ladder
func LadderSpawnSizes(l *physics.SizeLadder, n int) []float64 {
	tiers := l.Tiers()
	if n < len(tiers) {
		tiers = tiers[:n]
	}
	return tiers
}
