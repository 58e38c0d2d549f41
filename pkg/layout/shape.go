package layout

import (
	"math"

	"github.com/matzehuels/coilpos/pkg/geometry"
	"github.com/matzehuels/coilpos/pkg/track"
)

// ReferenceTrack builds a synthetic elliptical PF coil track around a
// plasma of major radius r0, aspect ratio a and elongation kappa. The
// track runs top to bottom around the outboard side, extending ext
// degrees past each midplane crossing so the angular cutoff projections
// have somewhere to land. offset is the radial clearance between the
// plasma boundary and the track.
func ReferenceTrack(r0, a, kappa, ext, offset float64, n int) (*track.Track, error) {
	minor := r0/a + offset
	pts := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		theta := (90 + ext - float64(i)*(180+2*ext)/float64(n-1)) * math.Pi / 180
		pts[i] = geometry.Pt(r0+minor*math.Cos(theta), kappa*minor*math.Sin(theta))
	}
	return track.New(pts)
}
