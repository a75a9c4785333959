package component

import "github.com/lixenwraith/bounce/vmath"

// Body is a simulated circular particle
// Radius is always > 0; Gravity and Restitution are per-body constants set at creation
type Body struct {
	Pos         vmath.Vec2
	Vel         vmath.Vec2
	Radius      float64
	Color       Color
	Gravity     float64 // Added to Vel.Y each tick
	Restitution float64 // Fraction of vertical speed kept on floor bounce, [0,1]
}

// Bottom returns the lowest point of the body (screen Y grows downward)
func (b *Body) Bottom() float64 {
	return b.Pos.Y + b.Radius
}
