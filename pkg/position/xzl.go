package position

import (
	"math"
	"sort"

	"github.com/matzehuels/coilpos/pkg/coil"
	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
	"github.com/matzehuels/coilpos/pkg/track"
)

// XZLMapper adapts a PF coil track for a positional optimiser: it
// translates between (x, z) and normalised track coordinates, keeps the
// exclusion-zone bookkeeping, and derives per-coil bounds. When a central
// solenoid is attached it also maps CS module heights onto a straight
// normalised track from z_max (L = 0) down to z_min (L = 1).
//
// The mapper owns its interval and zone caches exclusively; it is meant
// to be driven sequentially by one optimisation loop.
type XZLMapper struct {
	track *track.Track

	hasCS      bool
	xCS        float64
	zMin, zMax float64
	gap        float64

	zones      []geometry.Polygon
	exclusions [][2]float64 // sorted by start L; nil until zones are added
}

// NewXZLMapper wraps a PF coil track.
func NewXZLMapper(tr *track.Track) *XZLMapper {
	return &XZLMapper{track: tr}
}

// AttachCS enables central-solenoid mapping between zMin and zMax with
// the given radial centre and fixed inter-module gap.
func (m *XZLMapper) AttachCS(xCS, zMin, zMax, gap float64) {
	m.hasCS = true
	m.xCS = xCS
	m.zMin = zMin
	m.zMax = zMax
	m.gap = gap
}

// Track returns the wrapped PF track.
func (m *XZLMapper) Track() *track.Track { return m.track }

// XZToL converts a physical PF coil position to its normalised track
// coordinate.
func (m *XZLMapper) XZToL(x, z float64) float64 {
	return m.track.Param(x, z)
}

// LToXZ converts normalised track coordinates back to physical (x, z)
// positions for each entry of l.
func (m *XZLMapper) LToXZ(l []float64) (xs, zs []float64) {
	xs = make([]float64, len(l))
	zs = make([]float64, len(l))
	for i, v := range l {
		p := m.track.Position(v)
		xs[i], zs[i] = p.X, p.Z
	}
	return xs, zs
}

// ZToL converts CS module centre heights to normalised positions of the
// module edges on the solenoid track. Centres are processed top-down;
// module i's far edge is module i-1's near edge minus the gap, and the
// last edge pins to z_min. A single module maps to L = 0.5.
func (m *XZLMapper) ZToL(zCentres []float64) []float64 {
	zc := make([]float64, len(zCentres))
	copy(zc, zCentres)
	sort.Sort(sort.Reverse(sort.Float64Slice(zc)))

	if len(zc) == 1 {
		return []float64{0.5}
	}
	edges := make([]float64, len(zc))
	edges[0] = m.zMax - 2*math.Abs(m.zMax-zc[0])
	for i := 1; i < len(zc)-1; i++ {
		edges[i] = zc[i] - (edges[i-1] - zc[i] - m.gap)
	}
	edges[len(zc)-1] = m.zMin

	ls := make([]float64, len(edges))
	for i, e := range edges {
		ls[i] = (m.zMax - e) / (m.zMax - m.zMin)
	}
	return ls
}

// LToZdZ converts normalised CS edge positions back into module
// placements: the solenoid radial centre, module centre heights and half
// heights, ordered bottom-to-top to match CS module numbering.
func (m *XZLMapper) LToZdZ(l []float64) (xs, zs, dzs []float64) {
	ls := make([]float64, len(l))
	for i, v := range l {
		ls[i] = clamp01(v)
	}
	sort.Float64s(ls)

	edges := make([]float64, len(ls))
	for i, v := range ls {
		edges[i] = m.zMax - v*(m.zMax-m.zMin)
	}

	n := len(ls)
	xs = make([]float64, n)
	zs = make([]float64, n)
	dzs = make([]float64, n)
	zTop := make([]float64, n)
	dzTop := make([]float64, n)
	dzTop[0] = math.Abs(m.zMax-edges[0]) / 2
	zTop[0] = m.zMax - dzTop[0]
	for i := 1; i < n; i++ {
		dzTop[i] = math.Abs(edges[i-1]-edges[i]-m.gap) / 2
		zTop[i] = edges[i-1] - dzTop[i] - m.gap
	}
	for i := 0; i < n; i++ {
		xs[i] = m.xCS
		zs[i] = zTop[n-1-i]
		dzs[i] = dzTop[n-1-i]
	}
	return xs, zs, dzs
}

// AddExclusionZones registers additional exclusion polygons. Zones
// accumulate across calls; each call recomputes the full sorted interval
// list from the union of everything registered so far.
//
// Interval edges are derived analytically from the track-polygon
// crossings, so a track endpoint inside a zone maps to exactly L = 0 or
// L = 1 with no numeric-search noise.
func (m *XZLMapper) AddExclusionZones(zones []geometry.Polygon) {
	m.zones = append(m.zones, zones...)

	var intervals [][2]float64
	for _, zone := range m.zones {
		intervals = append(intervals, m.trackIntervals(zone)...)
	}
	m.exclusions = mergeIntervals(intervals)
}

// Exclusions returns a copy of the current sorted exclusion intervals in
// normalised track space.
func (m *XZLMapper) Exclusions() [][2]float64 {
	out := make([][2]float64, len(m.exclusions))
	copy(out, m.exclusions)
	return out
}

// trackIntervals returns the normalised sub-arcs of the track covered by
// one zone polygon.
func (m *XZLMapper) trackIntervals(zone geometry.Polygon) [][2]float64 {
	pts := m.track.Points()

	// Normalised L of every boundary crossing, in track order.
	var cuts []float64
	pos := 0.0
	for i := 0; i < len(pts)-1; i++ {
		segLen := pts[i].Distance(pts[i+1]) / m.track.Length()
		for _, t := range zone.SegmentCrossings(pts[i], pts[i+1]) {
			cuts = append(cuts, pos+t*segLen)
		}
		pos += segLen
	}
	sort.Float64s(cuts)

	// Walk the alternating inside/outside spans between crossings.
	var intervals [][2]float64
	inside := zone.ContainsEvenOdd(pts[0])
	start := 0.0
	for _, c := range cuts {
		if inside {
			intervals = append(intervals, [2]float64{start, c})
		}
		inside = !inside
		start = c
	}
	if inside {
		intervals = append(intervals, [2]float64{start, 1})
	}
	return intervals
}

// mergeIntervals unions overlapping intervals and sorts by start.
func mergeIntervals(intervals [][2]float64) [][2]float64 {
	if len(intervals) == 0 {
		return nil
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i][0] < intervals[j][0] })
	merged := [][2]float64{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv[0] <= last[1] {
			last[1] = math.Max(last[1], iv[1])
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}

// GetLMap computes the initial normalised position vector and its bounds
// for the named PF coils, followed by the CS modules when a solenoid is
// attached. One triple is returned per call: positions, lower bounds and
// upper bounds, elementwise lower ≤ position ≤ upper.
//
// A coil sitting inside an exclusion interval is nudged to the nearer
// interval edge plus a conductor-radius margin so it cannot overlap the
// zone boundary, and its bounds are the interval edges bracketing the
// nudged position. Coils left sharing an identical lower bound are then
// split across equal slices of that sub-track so no two coils can claim
// the same stretch.
func (m *XZLMapper) GetLMap(set *coil.Set, names []coil.Key) (l, lb, ub []float64, err error) {
	n := len(names)
	l = make([]float64, n)
	lb = make([]float64, n)
	ub = make([]float64, n)

	for i, key := range names {
		c, ok := set.Get(key)
		if !ok {
			return nil, nil, nil, errors.New(errors.CodeBadKey, "coil %s not in set", key)
		}
		loc := m.XZToL(c.X, c.Z)
		if m.exclusions == nil {
			l[i] = loc
			lb[i], ub[i] = 0, 1
			continue
		}
		margin := 2 * c.ConductorRadius() / m.track.Length()
		l[i] = loc + m.nudge(loc, margin)
		lb[i], ub[i] = m.bracket(l[i])
	}

	lb, ub = segmentTracks(lb, ub)
	for i := range l {
		l[i] = math.Max(lb[i], math.Min(ub[i], l[i]))
	}

	if m.hasCS {
		var zc []float64
		for _, c := range set.OfKind(coil.KindCS) {
			zc = append(zc, c.Z)
		}
		for _, v := range m.ZToL(zc) {
			l = append(l, v)
			lb = append(lb, 0)
			ub = append(ub, 1)
		}
	}
	return l, lb, ub, nil
}

// nudge returns the displacement moving loc out of the exclusion interval
// containing it, if any: to the nearer edge plus the margin.
func (m *XZLMapper) nudge(loc, margin float64) float64 {
	for _, ex := range m.exclusions {
		if ex[0] < loc && loc < ex[1] {
			back := -(loc - ex[0] + margin)
			forw := ex[1] - loc + margin
			if math.Abs(back) >= math.Abs(forw) {
				return forw
			}
			return back
		}
	}
	return 0
}

// bracket returns the exclusion-interval edges immediately enclosing loc.
func (m *XZLMapper) bracket(loc float64) (lower, upper float64) {
	lower, upper = 0, 1
	for _, ex := range m.exclusions {
		for _, edge := range ex {
			if loc < edge {
				return lower, edge
			}
			lower = edge
		}
	}
	return lower, upper
}

// segmentTracks subdivides degenerate sub-tracks: when k coils share an
// identical lower bound, their common range is split into k equal slices
// assigned top-down in encounter order, so no two coils can end up on top
// of each other. This is a deliberate anti-collision policy.
func segmentTracks(lb, ub []float64) ([]float64, []float64) {
	n := len(lb)
	lbNew := make([]float64, n)
	ubNew := make([]float64, n)

	count := func(v float64) int {
		c := 0
		for _, x := range lb {
			if x == v {
				c++
			}
		}
		return c
	}

	open := false
	groupEnd := -1
	for i := 0; i < n; i++ {
		c := count(lb[i])
		if i == groupEnd {
			open = false
		}
		switch {
		case c == 1:
			open = false
			lbNew[i] = lb[i]
			ubNew[i] = ub[i]
		case !open:
			open = true
			groupEnd = i + c
			delta := (ub[i] - lb[i]) / float64(c)
			for k := 0; k < c && i+k < n; k++ {
				lbNew[i+k] = ub[i] - float64(k+1)*delta
				ubNew[i+k] = ub[i] - float64(k)*delta
			}
		}
	}
	return lbNew, ubNew
}
