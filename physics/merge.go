package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/bounce/component"
)

// MergePolicy selects whether and how equal-sized bodies combine
type MergePolicy uint8

const (
	// MergeNone disables merging; every contact is elastic
	MergeNone MergePolicy = iota
	// MergeArea grows the result to sqrt(r1² + r2²)
	MergeArea
	// MergeLadder promotes the result to the next ladder tier, clamped at the top
	MergeLadder
)

func (p MergePolicy) String() string {
	switch p {
	case MergeNone:
		return "none"
	case MergeArea:
		return "area"
	case MergeLadder:
		return "ladder"
	default:
		return fmt.Sprintf("MergePolicy(%d)", p)
	}
}

// ParseMergePolicy maps a config string to a policy
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return MergeNone, nil
	case "area":
		return MergeArea, nil
	case "", "ladder":
		return MergeLadder, nil
	}
	return 0, fmt.Errorf("unknown merge policy %q", s)
}

// SameSize reports whether two radii are equal within tol; tol 0 is exact equality
func SameSize(r1, r2, tol float64) bool {
	return math.Abs(r1-r2) <= tol
}

// MergedRadius returns the radius of the body produced by merging r1 and r2
// A nil ladder under MergeLadder falls back to area growth
func MergedRadius(policy MergePolicy, ladder *SizeLadder, r1, r2 float64) float64 {
	if policy == MergeLadder && ladder != nil {
		if next, ok := ladder.Next(r1); ok {
			return next
		}
		return r1
	}
	return math.Hypot(r1, r2)
}

// Merge builds the single survivor of a pair
// Position is the radius-weighted average of the centers; velocity is the plain average
func Merge(a, b *component.Body, radius float64, color component.Color) component.Body {
	wa := a.Radius / (a.Radius + b.Radius)
	wb := b.Radius / (a.Radius + b.Radius)

	return component.Body{
		Pos:         a.Pos.Scale(wa).Add(b.Pos.Scale(wb)),
		Vel:         a.Vel.Add(b.Vel).Scale(0.5),
		Radius:      radius,
		Color:       color,
		Gravity:     a.Gravity,
		Restitution: a.Restitution,
	}
}
