package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/parameter"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

// ErrInvalid wraps every rejected configuration value
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes every environment override
const EnvPrefix = "BOUNCE_"

// Config is the user-facing simulation configuration
// Layers, later wins: Default, TOML file, environment
type Config struct {
	Gravity     float64 `toml:"gravity"`
	Restitution float64 `toml:"restitution"`

	CollisionModel string    `toml:"collision_model"` // decompose | exchange
	MergePolicy    string    `toml:"merge_policy"`    // ladder | area | none
	MergeTolerance float64   `toml:"merge_tolerance"`
	Ladder         []float64 `toml:"ladder"`

	SpawnPolicy string    `toml:"spawn_policy"` // discrete | continuous
	RadiusMin   float64   `toml:"radius_min"`
	RadiusMax   float64   `toml:"radius_max"`
	SpawnSizes  []float64 `toml:"spawn_sizes"` // empty: smallest ladder tiers
	SpawnSpeed  float64   `toml:"spawn_speed"`

	MaxBodies     int  `toml:"max_bodies"`
	CullOffscreen bool `toml:"cull_offscreen"`

	// Seed 0 lets the frontend pick a time-based seed
	Seed int64 `toml:"seed"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		Gravity:        parameter.Gravity,
		Restitution:    parameter.Restitution,
		CollisionModel: physics.ModelDecompose.String(),
		MergePolicy:    physics.MergeLadder.String(),
		MergeTolerance: parameter.MergeTolerance,
		Ladder:         append([]float64(nil), parameter.Ladder...),
		SpawnPolicy:    engine.SpawnDiscrete.String(),
		RadiusMin:      parameter.SpawnRadiusMin,
		RadiusMax:      parameter.SpawnRadiusMax,
		SpawnSpeed:     parameter.SpawnSpeed,
		MaxBodies:      parameter.MaxBodies,
	}
}

// Load decodes a TOML file over the defaults; unknown keys are rejected
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads dotenv files into the process environment without overriding set variables
// With no arguments it reads ./.env; missing files are not an error
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Resolve layers configuration for frontends: ./.env, then the TOML file at path (empty skips it), then BOUNCE_* variables
func Resolve(path string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays BOUNCE_* environment variables onto c
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"GRAVITY", &c.Gravity},
		{"RESTITUTION", &c.Restitution},
		{"MERGE_TOLERANCE", &c.MergeTolerance},
		{"RADIUS_MIN", &c.RadiusMin},
		{"RADIUS_MAX", &c.RadiusMax},
		{"SPAWN_SPEED", &c.SpawnSpeed},
	}
	for _, f := range floats {
		if v, ok := lookup(EnvPrefix + f.key); ok {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, f.key, v, err)
			}
			*f.dst = parsed
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"COLLISION_MODEL", &c.CollisionModel},
		{"MERGE_POLICY", &c.MergePolicy},
		{"SPAWN_POLICY", &c.SpawnPolicy},
	}
	for _, s := range strs {
		if v, ok := lookup(EnvPrefix + s.key); ok {
			*s.dst = v
		}
	}

	lists := []struct {
		key string
		dst *[]float64
	}{
		{"LADDER", &c.Ladder},
		{"SPAWN_SIZES", &c.SpawnSizes},
	}
	for _, l := range lists {
		if v, ok := lookup(EnvPrefix + l.key); ok {
			parsed, err := parseFloatList(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, l.key, err)
			}
			*l.dst = parsed
		}
	}

	if v, ok := lookup(EnvPrefix + "MAX_BODIES"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sMAX_BODIES=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.MaxBodies = n
	}
	if v, ok := lookup(EnvPrefix + "CULL_OFFSCREEN"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sCULL_OFFSCREEN=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.CullOffscreen = b
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.Seed = n
	}

	return c.Validate()
}

// parseFloatList parses "10, 14,20"; an empty string yields an empty list
func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Validate checks ranges and enum values
func (c *Config) Validate() error {
	if !vmath.IsFinite(c.Gravity) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalid)
	}
	if !vmath.IsFinite(c.Restitution) || c.Restitution < 0 || c.Restitution > 1 {
		return fmt.Errorf("%w: restitution %v outside [0,1]", ErrInvalid, c.Restitution)
	}
	if !vmath.IsFinite(c.MergeTolerance) || c.MergeTolerance < 0 {
		return fmt.Errorf("%w: merge_tolerance %v must be >= 0", ErrInvalid, c.MergeTolerance)
	}
	if !vmath.IsFinite(c.RadiusMin) || !vmath.IsFinite(c.RadiusMax) || c.RadiusMin <= 0 || c.RadiusMax < c.RadiusMin {
		return fmt.Errorf("%w: radius range [%v,%v] must satisfy 0 < min <= max", ErrInvalid, c.RadiusMin, c.RadiusMax)
	}
	if !vmath.IsFinite(c.SpawnSpeed) || c.SpawnSpeed < 0 {
		return fmt.Errorf("%w: spawn_speed %v must be >= 0", ErrInvalid, c.SpawnSpeed)
	}
	if c.MaxBodies < 0 {
		return fmt.Errorf("%w: max_bodies %d must be >= 0", ErrInvalid, c.MaxBodies)
	}
	for _, r := range c.SpawnSizes {
		if !vmath.IsFinite(r) || r <= 0 {
			return fmt.Errorf("%w: spawn size %v must be positive", ErrInvalid, r)
		}
	}
	if _, err := physics.ParseCollisionModel(c.CollisionModel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := physics.ParseMergePolicy(c.MergePolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := engine.ParseSpawnPolicy(c.SpawnPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Ladder) > 0 {
		if _, err := physics.NewSizeLadder(c.Ladder); err != nil {
			return fmt.Errorf("%w: ladder: %v", ErrInvalid, err)
		}
	}
	return nil
}

// Settings converts the configuration into engine settings
// An empty ladder yields a nil ladder; ladder merging then falls back to area growth
func (c *Config) Settings() (engine.Settings, error) {
	if err := c.Validate(); err != nil {
		return engine.Settings{}, err
	}

	// Parse errors were ruled out by Validate
	model, _ := physics.ParseCollisionModel(c.CollisionModel)
	merge, _ := physics.ParseMergePolicy(c.MergePolicy)
	spawn, _ := engine.ParseSpawnPolicy(c.SpawnPolicy)

	var ladder *physics.SizeLadder
	if len(c.Ladder) > 0 {
		ladder, _ = physics.NewSizeLadder(c.Ladder)
	}

	sizes := append([]float64(nil), c.SpawnSizes...)
	if len(sizes) == 0 {
		sizes = engine.LadderSpawnSizes(ladder, parameter.SpawnLadderTiers)
	}

	return engine.Settings{
		Gravity:        c.Gravity,
		Restitution:    c.Restitution,
		Model:          model,
		Merge:          merge,
		MergeTolerance: c.MergeTolerance,
		Ladder:         ladder,
		Spawn:          spawn,
		RadiusMin:      c.RadiusMin,
		RadiusMax:      c.RadiusMax,
		SpawnSizes:     sizes,
		SpawnSpeed:     c.SpawnSpeed,
		MaxBodies:      c.MaxBodies,
		CullOffscreen:  c.CullOffscreen,
	}, nil
}
