// Package vec provides the 2D vector math shared by the floor generator,
// the AI engine, and the movement system. Positions are in tile units.
package vec

import "math"

// Vec2 is a 2D point or direction in tile units.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Len2 returns the squared length of v. Distance comparisons throughout the
// simulation use squared values so no root is extracted on the hot path.
func (v Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }

// Normalized returns v scaled to unit length, or the zero vector when v is
// too short to carry a direction.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dist2 returns the squared distance between a and b.
func Dist2(a, b Vec2) float64 { return b.Sub(a).Len2() }
