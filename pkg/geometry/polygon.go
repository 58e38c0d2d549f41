package geometry

import (
	"math"
	"sort"
)

// Eps is the tolerance used for geometric degeneracy checks. It is scaled
// by the magnitude of the operands where that matters.
const Eps = 1e-9

// Polygon is a closed loop of vertices in the (x, z) plane. The closing
// edge from the last vertex back to the first is implicit; winding order
// is arbitrary but must be consistent.
type Polygon []Point

// Rectangle returns the axis-aligned rectangular polygon centred on c with
// half-width dx and half-height dz.
func Rectangle(c Point, dx, dz float64) Polygon {
	return Polygon{
		{c.X - dx, c.Z - dz},
		{c.X + dx, c.Z - dz},
		{c.X + dx, c.Z + dz},
		{c.X - dx, c.Z + dz},
	}
}

// signedArea computes the shoelace sum. Positive for counter-clockwise
// winding.
func (pg Polygon) signedArea() float64 {
	sum := 0.0
	for i, a := range pg {
		b := pg[(i+1)%len(pg)]
		sum += a.X*b.Z - b.X*a.Z
	}
	return 0.5 * sum
}

// Area returns the enclosed area of the polygon, independent of winding.
func (pg Polygon) Area() float64 {
	return math.Abs(pg.signedArea())
}

// Bounds returns the axis-aligned bounding box of the polygon as its
// minimum and maximum corner points.
func (pg Polygon) Bounds() (min, max Point) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for _, p := range pg {
		min.X = math.Min(min.X, p.X)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Z = math.Max(max.Z, p.Z)
	}
	return min, max
}

// Centroid returns the arithmetic mean of the vertices.
func (pg Polygon) Centroid() Point {
	var c Point
	for _, p := range pg {
		c.X += p.X
		c.Z += p.Z
	}
	n := float64(len(pg))
	return Point{c.X / n, c.Z / n}
}

// HullArea returns the area of the convex hull of the vertices, computed
// with Andrew's monotone chain.
func (pg Polygon) HullArea() float64 {
	if len(pg) < 3 {
		return 0
	}
	pts := make([]Point, len(pg))
	copy(pts, pg)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Z < pts[j].Z
	})

	build := func(seq []Point) []Point {
		var hull []Point
		for _, p := range seq {
			for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		return hull
	}

	lower := build(pts)
	upper := build(reversed(pts))
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return Polygon(hull).Area()
}

// IsConvex reports whether the polygon is its own convex hull, i.e. the
// hull encloses no additional area beyond a relative tolerance.
func (pg Polygon) IsConvex() bool {
	area := pg.Area()
	return math.Abs(pg.HullArea()-area) <= Eps*math.Max(1, area)*1e3
}

// Contains reports whether p lies inside or on the boundary of the polygon.
// The polygon must be convex.
func (pg Polygon) Contains(p Point) bool {
	orient := 1.0
	if pg.signedArea() < 0 {
		orient = -1.0
	}
	_, max := pg.Bounds()
	tol := Eps * math.Max(1, math.Max(math.Abs(max.X), math.Abs(max.Z)))
	for i, a := range pg {
		b := pg[(i+1)%len(pg)]
		if orient*cross(a, b, p) < -tol {
			return false
		}
	}
	return true
}

// ContainsEvenOdd reports whether p lies inside the polygon by even-odd
// ray casting. Unlike Contains it accepts non-convex polygons, which is
// what exclusion zones may be. Boundary points count as inside.
func (pg Polygon) ContainsEvenOdd(p Point) bool {
	inside := false
	for i, a := range pg {
		b := pg[(i+1)%len(pg)]
		if pointOnSegment(p, a, b) {
			return true
		}
		if (a.Z > p.Z) != (b.Z > p.Z) {
			x := a.X + (p.Z-a.Z)/(b.Z-a.Z)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnSegment(p, a, b Point) bool {
	tol := Eps * math.Max(1, math.Max(math.Abs(p.X), math.Abs(p.Z)))
	if math.Abs(cross(a, b, p)) > tol*math.Max(1, a.Distance(b)) {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-tol && p.X <= math.Max(a.X, b.X)+tol &&
		p.Z >= math.Min(a.Z, b.Z)-tol && p.Z <= math.Max(a.Z, b.Z)+tol
}

func reversed(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
