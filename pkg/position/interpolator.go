package position

import (
	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

// RegionInterpolator maps a single convex region onto the unit square:
// (L0, L1) ∈ [0,1]² with L1 the normalised height and L0 the normalised
// position across the horizontal chord at that height.
//
// The region is treated as a flat surface and must be convex — the
// normalisation cuts the polygon with horizontal planes and a non-convex
// shape would yield more than one chord. Generalising to arbitrary
// polygons is possible but unimplemented.
//
// A coil position outside the region is not rejected: both conversions
// clamp into [0, 1], so an outside coil snaps to the region boundary. The
// snap direction is not canonically defined; the only certainty is that
// the result lies in the region.
type RegionInterpolator struct {
	poly       geometry.Polygon
	zMin, zMax float64
}

// NewRegionInterpolator validates the region and prepares its z-banding.
// Returns a CodeNotConvex error unless the polygon's area equals its
// convex hull's area within tolerance.
func NewRegionInterpolator(poly geometry.Polygon) (*RegionInterpolator, error) {
	if len(poly) < 3 {
		return nil, errors.New(errors.CodeNotConvex, "region needs at least 3 vertices, got %d", len(poly))
	}
	if !poly.IsConvex() {
		return nil, errors.New(errors.CodeNotConvex, "region must be convex")
	}
	min, max := poly.Bounds()
	return &RegionInterpolator{poly: poly, zMin: min.Z, zMax: max.Z}, nil
}

// Polygon returns the region boundary.
func (r *RegionInterpolator) Polygon() geometry.Polygon { return r.poly }

// ToXZ converts normalised (l0, l1) to physical (x, z). The horizontal
// cut at the banded z yields two crossings inside the region and a single
// one at a degenerate top or bottom vertex; any other count means the
// polygon is not convex and returns a CodeBadCrossing error.
func (r *RegionInterpolator) ToXZ(l0, l1 float64) (x, z float64, err error) {
	l0 = clamp01(l0)
	l1 = clamp01(l1)
	z = r.zMin + l1*(r.zMax-r.zMin)

	xs := r.poly.CutZ(z)
	switch len(xs) {
	case 1:
		x = xs[0]
	case 2:
		x = xs[0] + l0*(xs[1]-xs[0])
	default:
		return 0, 0, errors.New(errors.CodeBadCrossing, "horizontal cut at z=%g crossed the region %d times", z, len(xs))
	}
	return x, z, nil
}

// ToL converts physical (x, z) to normalised (l0, l1). l1 comes from
// clamping z into the region's vertical span; the horizontal cut at z then
// brackets l0. When the cut misses entirely — the point lies beyond the
// top or bottom edge — the cut is retried at the clamped height, where a
// single-crossing result identifies a degenerate vertex.
//
// The single-crossing branch maps l0 to 1 only when l1 == 1: a
// bottom-vertex degeneracy therefore lands on l0 = 0. The asymmetry is
// retained deliberately.
func (r *RegionInterpolator) ToL(x, z float64) (l0, l1 float64, err error) {
	l1 = clamp01((z - r.zMin) / (r.zMax - r.zMin))

	l0, err = r.chordParam(x, l1, r.poly.CutZ(z), true)
	return l0, l1, err
}

// chordParam places x on the horizontal chord found by a cut. retry
// permits one recut at the clamped height for the boundary case.
func (r *RegionInterpolator) chordParam(x, l1 float64, xs []float64, retry bool) (float64, error) {
	switch len(xs) {
	case 2:
		return clamp01((x - xs[0]) / (xs[1] - xs[0])), nil
	case 1:
		if l1 == 1 {
			return 1, nil
		}
		return 0, nil
	case 0:
		if retry {
			zc := r.zMin + l1*(r.zMax-r.zMin)
			return r.chordParam(x, l1, r.poly.CutZ(zc), false)
		}
		return 0, errors.New(errors.CodeBadCrossing, "horizontal cut missed the region")
	default:
		return 0, errors.New(errors.CodeBadCrossing, "horizontal cut crossed the region %d times", len(xs))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
