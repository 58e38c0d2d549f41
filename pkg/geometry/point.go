package geometry

import (
	"fmt"
	"math"
)

// Point is a location in the poloidal (x, z) plane. x is the radial
// coordinate, z the vertical one; both are in metres.
type Point struct {
	X float64
	Z float64
}

// Pt returns the point (x, z).
func Pt(x, z float64) Point {
	return Point{X: x, Z: z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Z)
}

// Lerp linearly interpolates between two points.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{
		X: p.X + t*(o.X-p.X),
		Z: p.Z + t*(o.Z-p.Z),
	}
}

// Midpoint returns the midpoint of two points.
func (p Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (p.X + o.X),
		Z: 0.5 * (p.Z + o.Z),
	}
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Z-o.Z)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (p Point) DistanceSquared(o Point) float64 {
	dx := p.X - o.X
	dz := p.Z - o.Z
	return dx*dx + dz*dz
}

// cross returns the z-component of the cross product of (b-a) and (c-a).
// Positive when c lies to the left of the directed line a→b.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Z-a.Z) - (b.Z-a.Z)*(c.X-a.X)
}
