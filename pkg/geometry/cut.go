package geometry

import (
	"math"
	"sort"
)

// CutZ intersects the polygon boundary with the horizontal line z = const
// and returns the x-coordinates of the crossings, sorted ascending and
// deduplicated. A convex polygon yields two crossings for an interior z,
// one at a degenerate top or bottom vertex, and none when z is outside the
// polygon's vertical extent.
func (pg Polygon) CutZ(z float64) []float64 {
	var xs []float64
	for i, a := range pg {
		b := pg[(i+1)%len(pg)]
		switch {
		case onLine(a.Z, z) && onLine(b.Z, z):
			// Edge lying on the cut: both endpoints cross.
			xs = append(xs, a.X, b.X)
		case (a.Z-z)*(b.Z-z) <= 0 && a.Z != b.Z:
			t := (z - a.Z) / (b.Z - a.Z)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
	}
	return dedupeSorted(xs)
}

// CutX intersects the polygon boundary with the vertical line x = const
// and returns the z-coordinates of the crossings, sorted ascending and
// deduplicated.
func (pg Polygon) CutX(x float64) []float64 {
	var zs []float64
	for i, a := range pg {
		b := pg[(i+1)%len(pg)]
		switch {
		case onLine(a.X, x) && onLine(b.X, x):
			zs = append(zs, a.Z, b.Z)
		case (a.X-x)*(b.X-x) <= 0 && a.X != b.X:
			t := (x - a.X) / (b.X - a.X)
			zs = append(zs, a.Z+t*(b.Z-a.Z))
		}
	}
	return dedupeSorted(zs)
}

// SegmentCrossings returns the parameters t ∈ [0, 1) along the segment
// a→b at which it crosses the polygon boundary, sorted ascending. The
// range is half-open so a crossing on a shared vertex of a polyline is
// reported by exactly one of the two adjacent segments.
func (pg Polygon) SegmentCrossings(a, b Point) []float64 {
	var ts []float64
	for i, c := range pg {
		d := pg[(i+1)%len(pg)]
		if t, ok := segmentIntersect(a, b, c, d); ok {
			ts = append(ts, t)
		}
	}
	return dedupeSorted(ts)
}

// segmentIntersect returns the parameter along a→b where it meets the
// segment c→d, if the two segments intersect properly.
func segmentIntersect(a, b, c, d Point) (float64, bool) {
	rX, rZ := b.X-a.X, b.Z-a.Z
	sX, sZ := d.X-c.X, d.Z-c.Z
	denom := rX*sZ - rZ*sX
	if math.Abs(denom) < Eps {
		return 0, false // parallel or collinear
	}
	qpX, qpZ := c.X-a.X, c.Z-a.Z
	t := (qpX*sZ - qpZ*sX) / denom
	u := (qpX*rZ - qpZ*rX) / denom
	if t < -Eps || t >= 1-Eps || u < -Eps || u > 1+Eps {
		return 0, false
	}
	return t, true
}

func onLine(v, line float64) bool {
	return math.Abs(v-line) <= Eps*math.Max(1, math.Abs(line))
}

func dedupeSorted(vs []float64) []float64 {
	if len(vs) == 0 {
		return nil
	}
	sort.Float64s(vs)
	tol := Eps * math.Max(1, math.Abs(vs[len(vs)-1]))
	out := vs[:1]
	for _, v := range vs[1:] {
		if v-out[len(out)-1] > tol {
			out = append(out, v)
		}
	}
	return out
}
