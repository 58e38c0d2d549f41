package track

import (
	"math"

	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

// Project casts a ray from ref at the given angle (degrees, measured
// counter-clockwise from the positive x-axis) and returns the index of the
// track vertex nearest to the first ray-track intersection.
//
// Returns a CodeNoProjection error when the ray misses the track entirely,
// i.e. the requested angular point lies outside the track's extent. Callers
// typically degrade to the first or last vertex in that case.
func (t *Track) Project(ref geometry.Point, angleDeg float64) (int, error) {
	rad := angleDeg * math.Pi / 180
	dx, dz := math.Cos(rad), math.Sin(rad)

	bestT := math.Inf(1)
	bestIdx := -1
	for i := 0; i < len(t.pts)-1; i++ {
		a, b := t.pts[i], t.pts[i+1]
		rayT, segU, ok := raySegment(ref, dx, dz, a, b)
		if !ok || rayT >= bestT {
			continue
		}
		bestT = rayT
		if segU < 0.5 {
			bestIdx = i
		} else {
			bestIdx = i + 1
		}
	}
	if bestIdx < 0 {
		return 0, errors.New(errors.CodeNoProjection, "ray from %v at %.1f° does not meet the track", ref, angleDeg)
	}
	return bestIdx, nil
}

// raySegment intersects the ray ref + t·(dx, dz), t ≥ 0 with the segment
// a→b. Returns the ray parameter t and the segment fraction u.
func raySegment(ref geometry.Point, dx, dz float64, a, b geometry.Point) (t, u float64, ok bool) {
	sx, sz := b.X-a.X, b.Z-a.Z
	denom := dx*sz - dz*sx
	if math.Abs(denom) < geometry.Eps {
		return 0, 0, false
	}
	qx, qz := a.X-ref.X, a.Z-ref.Z
	t = (qx*sz - qz*sx) / denom
	u = (qx*dz - qz*dx) / denom
	if t < 0 || u < -geometry.Eps || u > 1+geometry.Eps {
		return 0, 0, false
	}
	return t, u, true
}
