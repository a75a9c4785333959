package vmath

import "math"

// Vec2 is a 2D vector in surface units (pixels or half-cells, frontend-defined)
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns v.X*o.X + v.Y*o.Y
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSq returns squared length without sqrt
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perpendicular returns vector rotated 90° counter-clockwise
func (v Vec2) Perpendicular() Vec2 { return Vec2{-v.Y, v.X} }

// Lerp returns a + (b-a)*t
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Distance returns the Euclidean distance between two points
func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// IsFinite reports whether both components are finite
func (v Vec2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}
