// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p PointInt) Distance(other PointInt) float64 {
	return math.Hypot(float64(p.X-other.X), float64(p.Y-other.Y))
}

// Clamp returns the point clamped into [0, w-1] x [0, h-1].
func (p PointInt) Clamp(w, h int) PointInt {
	q := p
	if q.X > w-1 {
		q.X = w - 1
	}
	if q.Y > h-1 {
		q.Y = h - 1
	}
	if q.X < 0 {
		q.X = 0
	}
	if q.Y < 0 {
		q.Y = 0
	}
	return q
}

// Size represents a 2D size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
