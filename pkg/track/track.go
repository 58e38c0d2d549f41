package track

import (
	"math"
	"sort"

	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

// Track is an ordered, open polyline in the (x, z) plane along which PF
// coils may be positioned. It is immutable once built and exposes an
// arclength-normalised parametrisation: L ∈ [0, 1] runs from the first
// vertex to the last.
type Track struct {
	pts []geometry.Point
	cum []float64 // normalised cumulative arclength per vertex
	len float64   // total arclength in metres
}

// New builds a track from an ordered sequence of vertices. Consecutive
// duplicate points are dropped. Returns a CodeEmptyTrack error when fewer
// than two distinct vertices remain.
func New(pts []geometry.Point) (*Track, error) {
	clean := make([]geometry.Point, 0, len(pts))
	for _, p := range pts {
		if len(clean) > 0 && p.Distance(clean[len(clean)-1]) <= geometry.Eps {
			continue
		}
		clean = append(clean, p)
	}
	if len(clean) < 2 {
		return nil, errors.New(errors.CodeEmptyTrack, "track needs at least two distinct points, got %d", len(clean))
	}

	cum := make([]float64, len(clean))
	total := 0.0
	for i := 1; i < len(clean); i++ {
		total += clean[i].Distance(clean[i-1])
		cum[i] = total
	}
	for i := range cum {
		cum[i] /= total
	}
	return &Track{pts: clean, cum: cum, len: total}, nil
}

// Length returns the total arclength of the track in metres.
func (t *Track) Length() float64 { return t.len }

// NumPoints returns the number of track vertices.
func (t *Track) NumPoints() int { return len(t.pts) }

// Point returns the i-th track vertex.
func (t *Track) Point(i int) geometry.Point { return t.pts[i] }

// Start returns the first track vertex (L = 0).
func (t *Track) Start() geometry.Point { return t.pts[0] }

// End returns the last track vertex (L = 1).
func (t *Track) End() geometry.Point { return t.pts[len(t.pts)-1] }

// Points returns a copy of the track vertices.
func (t *Track) Points() []geometry.Point {
	out := make([]geometry.Point, len(t.pts))
	copy(out, t.pts)
	return out
}

// Position returns the (x, z) point at normalised arclength l. Values
// outside [0, 1] clamp to the track endpoints.
func (t *Track) Position(l float64) geometry.Point {
	if l <= 0 {
		return t.pts[0]
	}
	if l >= 1 {
		return t.pts[len(t.pts)-1]
	}
	i := sort.SearchFloat64s(t.cum, l)
	// cum[i-1] < l <= cum[i]
	a, b := t.pts[i-1], t.pts[i]
	frac := (l - t.cum[i-1]) / (t.cum[i] - t.cum[i-1])
	return a.Lerp(b, frac)
}

// Param returns the normalised arclength L minimising the squared
// euclidean distance from (x, z) to the track. The forward map is a
// piecewise-linear interpolant with no analytic inverse, so the minimum is
// found by bounded scalar minimisation: the vertex parameters bracket the
// best segment and Brent's method polishes within it.
func (t *Track) Param(x, z float64) float64 {
	p := geometry.Pt(x, z)
	dist := func(l float64) float64 {
		return t.Position(l).DistanceSquared(p)
	}

	best := 0
	bestD := dist(t.cum[0])
	for i := 1; i < len(t.cum); i++ {
		if d := dist(t.cum[i]); d < bestD {
			best, bestD = i, d
		}
	}
	lo := t.cum[max(best-1, 0)]
	hi := t.cum[min(best+1, len(t.cum)-1)]
	return brentMin(dist, lo, hi)
}

// Sub returns the sub-track between vertex indices i and j inclusive,
// re-normalised to [0, 1]. Indices are swapped if out of order.
func (t *Track) Sub(i, j int) (*Track, error) {
	if i > j {
		i, j = j, i
	}
	i = max(i, 0)
	j = min(j, len(t.pts)-1)
	return New(t.pts[i : j+1])
}

// ZRange returns the minimum and maximum z over the track vertices.
func (t *Track) ZRange() (zmin, zmax float64) {
	zmin, zmax = math.Inf(1), math.Inf(-1)
	for _, p := range t.pts {
		zmin = math.Min(zmin, p.Z)
		zmax = math.Max(zmax, p.Z)
	}
	return zmin, zmax
}
