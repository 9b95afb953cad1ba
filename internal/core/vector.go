// Package core provides fundamental types and utilities for the simulation
// core. It contains no external dependencies to keep game logic pure and
// testable.
package core

import "math"

// Vec2 represents a 2D vector with float64 components.
type Vec2 struct {
	X, Y float64
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value.
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude of the vector.
// Use this when comparing lengths to avoid the sqrt cost.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector unchanged.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Distance returns the distance between two points.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// DistanceSquared returns the squared distance between two points.
func (v Vec2) DistanceSquared(other Vec2) float64 {
	return v.Sub(other).LengthSquared()
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rotate rotates the vector by the given angle in degrees,
// counterclockwise in screen coordinates (y axis points down).
func (v Vec2) Rotate(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ClampLength limits the vector's magnitude to max, preserving direction.
func (v Vec2) ClampLength(max float64) Vec2 {
	lenSq := v.LengthSquared()
	if lenSq <= max*max {
		return v
	}
	return v.Normalize().Scale(max)
}

// Heading returns a unit vector for a ship rotation in degrees.
// Rotation 0 faces "up" (negative Y), matching the display convention
// where the player ship points toward the top of the field.
func Heading(deg float64) Vec2 {
	return Vec2{X: 0, Y: -1}.Rotate(-deg)
}

// FromPolar creates a vector from a magnitude and an angle in degrees.
func FromPolar(magnitude, deg float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{X: magnitude * math.Cos(rad), Y: magnitude * math.Sin(rad)}
}
