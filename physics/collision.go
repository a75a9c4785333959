package physics

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/vmath"
)

// CollisionModel selects how velocities are exchanged on an elastic contact
type CollisionModel uint8

const (
	// ModelDecompose swaps the normal velocity components and keeps tangential ones (equal-mass elastic)
	ModelDecompose CollisionModel = iota
	// ModelExchange gives each body the other's entire velocity (lower-fidelity reference behavior)
	ModelExchange
)

func (m CollisionModel) String() string {
	switch m {
	case ModelDecompose:
		return "decompose"
	case ModelExchange:
		return "exchange"
	default:
		return fmt.Sprintf("CollisionModel(%d)", m)
	}
}

// ParseCollisionModel maps a config string to a model
func ParseCollisionModel(s string) (CollisionModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "decompose":
		return ModelDecompose, nil
	case "exchange":
		return ModelExchange, nil
	}
	return 0, fmt.Errorf("unknown collision model %q", s)
}

// FallbackNormal is used when two centers coincide exactly
var FallbackNormal = vmath.Vec2{X: 1, Y: 0}

// Contact describes an overlap between two bodies
// Normal points from the first body to the second
type Contact struct {
	Normal   vmath.Vec2
	Distance float64
	Overlap  float64
}

// Overlapping tests two bodies for overlap (distance < sum of radii)
// Coincident centers yield FallbackNormal so no division by zero reaches body state
func Overlapping(a, b *component.Body) (Contact, bool) {
	d := b.Pos.Sub(a.Pos)
	dist := d.Len()
	sum := a.Radius + b.Radius
	if dist >= sum {
		return Contact{}, false
	}

	n := FallbackNormal
	if dist > 0 {
		n = vmath.Vec2{X: d.X / dist, Y: d.Y / dist}
	}
	return Contact{Normal: n, Distance: dist, Overlap: sum - dist}, true
}

// Separate pushes both bodies apart along the normal by half the overlap each
func Separate(a, b *component.Body, c Contact) {
	half := c.Normal.Scale(c.Overlap / 2)
	a.Pos = a.Pos.Sub(half)
	b.Pos = b.Pos.Add(half)
}

// ExchangeVelocities resolves post-contact velocities along normal n according to model
func ExchangeVelocities(a, b *component.Body, n vmath.Vec2, model CollisionModel) {
	switch model {
	case ModelExchange:
		a.Vel, b.Vel = b.Vel, a.Vel
	default:
		an := a.Vel.Dot(n)
		bn := b.Vel.Dot(n)
		a.Vel = a.Vel.Add(n.Scale(bn - an))
		b.Vel = b.Vel.Add(n.Scale(an - bn))
	}
}

// ResolveElastic separates two overlapping bodies and exchanges velocities, returns false if no overlap
func ResolveElastic(a, b *component.Body, model CollisionModel) bool {
	c, ok := Overlapping(a, b)
	if !ok {
		return false
	}
	Separate(a, b, c)
	ExchangeVelocities(a, b, c.Normal, model)
	return true
}
