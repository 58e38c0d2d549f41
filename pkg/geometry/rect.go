package geometry

// inscribedIters bounds the bisection when searching for the largest
// inscribed rectangle. 40 halvings put the scale error below 1e-12.
const inscribedIters = 40

// InscribedRect returns the half-width and half-height of the largest
// axis-aligned rectangle centred on c that fits inside the convex polygon.
// The rectangle keeps the aspect ratio of the polygon's bounding box. When
// c lies outside the polygon both extents are zero.
func (pg Polygon) InscribedRect(c Point) (dx, dz float64) {
	if !pg.Contains(c) {
		return 0, 0
	}
	min, max := pg.Bounds()
	bx := 0.5 * (max.X - min.X)
	bz := 0.5 * (max.Z - min.Z)
	if bx <= 0 || bz <= 0 {
		return 0, 0
	}

	fits := func(s float64) bool {
		for _, p := range Rectangle(c, s*bx, s*bz) {
			if !pg.Contains(p) {
				return false
			}
		}
		return true
	}

	// The rectangle at s=1 spans the full bounding box and cannot fit
	// unless the polygon is that box itself.
	lo, hi := 0.0, 1.0
	if fits(hi) {
		return bx, bz
	}
	for i := 0; i < inscribedIters; i++ {
		mid := 0.5 * (lo + hi)
		if fits(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo * bx, lo * bz
}

// InscribedRectArea reports the area of the largest inscribed rectangle
// centred on c. Useful for current-density style size limits.
func (pg Polygon) InscribedRectArea(c Point) float64 {
	dx, dz := pg.InscribedRect(c)
	return 4 * dx * dz
}
