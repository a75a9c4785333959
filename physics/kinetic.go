package physics

import "github.com/lixenwraith/bounce/component"

// Bounce reports which boundaries a body hit during integration
type Bounce uint8

const (
	BounceFloor Bounce = 1 << iota
	BounceWall
)

// BounceNone is the zero value: no boundary contact this tick
const BounceNone Bounce = 0

// Has reports whether flag is set
func (b Bounce) Has(flag Bounce) bool {
	return b&flag != 0
}

// ApplyGravity adds the per-tick gravity to vertical velocity
func ApplyGravity(b *component.Body) {
	b.Vel.Y += b.Gravity
}

// ReflectFloor handles floor contact using one-tick look-ahead, returns true if reflection occurred
// Position is clamped to rest on the floor rather than reflected from the current position
func ReflectFloor(b *component.Body, height float64) bool {
	if b.Pos.Y+b.Radius+b.Vel.Y > height {
		b.Vel.Y *= -b.Restitution
		b.Pos.Y = height - b.Radius
		return true
	}
	return false
}

// ReflectWalls handles left/right wall contact using one-tick look-ahead, returns true if reflection occurred
// Walls are lossless, unlike the floor
func ReflectWalls(b *component.Body, width float64) bool {
	if b.Pos.X+b.Radius+b.Vel.X > width || b.Pos.X-b.Radius+b.Vel.X < 0 {
		b.Vel.X = -b.Vel.X
		return true
	}
	return false
}

// Integrate advances a body one tick: gravity, floor, walls, then p = p + v
// Order matters: bounce checks see the pre-update position and the about-to-be-applied velocity
func Integrate(b *component.Body, width, height float64) Bounce {
	var hit Bounce

	ApplyGravity(b)
	if ReflectFloor(b, height) {
		hit |= BounceFloor
	}
	if ReflectWalls(b, width) {
		hit |= BounceWall
	}

	b.Pos = b.Pos.Add(b.Vel)
	return hit
}

// OutOfBounds reports whether the body lies entirely outside the horizontal extent or below the floor
func OutOfBounds(b *component.Body, width, height float64) bool {
	return b.Pos.X+b.Radius < 0 || b.Pos.X-b.Radius > width || b.Pos.Y-b.Radius > height
}
