package core

import "math"

// Epsilon is the magnitude below which vectors and denominators are
// treated as zero.
const Epsilon = 1e-9

// Vec2 is a 2D vector used for slope and wind fields.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether v is shorter than Epsilon.
func (v Vec2) IsZero() bool { return v.Magnitude() < Epsilon }

// Normalized returns v scaled to unit length, or the zero vector when v is
// too short to carry a direction.
func (v Vec2) Normalized() Vec2 {
	m := v.Magnitude()
	if m < Epsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

// ClampMagnitude shortens v to at most limit.
func (v Vec2) ClampMagnitude(limit float64) Vec2 {
	m := v.Magnitude()
	if m <= limit || m < Epsilon {
		return v
	}
	return v.Scale(limit / m)
}

// Lerp interpolates linearly from v to o; t is not clamped.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}
