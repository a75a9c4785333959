package parameter

// Per-tick physics defaults, tuned for FrameUpdateInterval pacing
const (
	// Gravity is added to vertical velocity every tick
	Gravity = 0.981

	// Restitution is the fraction of vertical speed kept on a floor bounce
	Restitution = 0.9

	// MergeTolerance is the absolute radius difference still treated as "equal size"
	MergeTolerance = 1e-9
)

// Spawn defaults
const (
	SpawnRadiusMin = 10.0
	SpawnRadiusMax = 30.0

	// SpawnSpeed bounds each velocity axis to [-SpawnSpeed, SpawnSpeed)
	SpawnSpeed = 4.0

	// SpawnLadderTiers is how many of the smallest ladder tiers the discrete policy draws from
	SpawnLadderTiers = 3
)

// Ladder is the default merge tier table (ascending radii)
var Ladder = []float64{10, 14, 20, 28, 40, 56, 80}

// MergeBonusPerTier is the score bonus per (1 + tier index) for bodies sitting on a ladder tier
const MergeBonusPerTier = 10
