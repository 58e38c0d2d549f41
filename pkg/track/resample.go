package track

import (
	"github.com/cnkei/gospline"

	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

// Resample returns a new track of n points interpolated through this one
// with a natural cubic spline in normalised arclength. Use it to densify a
// coarse TF-boundary polyline before positioning coils on it: the
// parametrisation itself stays piecewise linear, so a denser vertex set is
// what buys smoothness.
func (t *Track) Resample(n int) (*Track, error) {
	if n < 2 {
		return nil, errors.New(errors.CodeEmptyTrack, "resample needs at least two points, got %d", n)
	}

	xs := make([]float64, len(t.pts))
	zs := make([]float64, len(t.pts))
	for i, p := range t.pts {
		xs[i] = p.X
		zs[i] = p.Z
	}
	sx := gospline.NewCubicSpline(t.cum, xs)
	sz := gospline.NewCubicSpline(t.cum, zs)

	pts := make([]geometry.Point, n)
	for i := range pts {
		l := float64(i) / float64(n-1)
		pts[i] = geometry.Pt(sx.At(l), sz.At(l))
	}
	return New(pts)
}
