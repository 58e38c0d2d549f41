package position

import (
	"math"
	"testing"

	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

var (
	// 2×2 square centred on (5, 0)
	squareRegion = geometry.Polygon{{X: 4, Z: -1}, {X: 6, Z: -1}, {X: 6, Z: 1}, {X: 4, Z: 1}}
	// unit diamond with degenerate top and bottom vertices
	diamondRegion = geometry.Polygon{{X: 0, Z: -1}, {X: 1, Z: 0}, {X: 0, Z: 1}, {X: -1, Z: 0}}
)

func TestNewRegionInterpolatorRejectsNonConvex(t *testing.T) {
	lshape := geometry.Polygon{{X: 0, Z: 0}, {X: 2, Z: 0}, {X: 2, Z: 2}, {X: 1, Z: 2}, {X: 1, Z: 1}, {X: 0, Z: 1}}
	if _, err := NewRegionInterpolator(lshape); !errors.Is(err, errors.CodeNotConvex) {
		t.Errorf("error = %v, want CodeNotConvex", err)
	}
	if _, err := NewRegionInterpolator(geometry.Polygon{{X: 0, Z: 0}, {X: 1, Z: 1}}); !errors.Is(err, errors.CodeNotConvex) {
		t.Errorf("error = %v, want CodeNotConvex", err)
	}
}

func TestRegionRoundTrip(t *testing.T) {
	r, err := NewRegionInterpolator(squareRegion)
	if err != nil {
		t.Fatal(err)
	}
	for _, l0 := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, l1 := range []float64{0, 0.25, 0.5, 0.75, 1} {
			x, z, err := r.ToXZ(l0, l1)
			if err != nil {
				t.Fatalf("ToXZ(%v, %v): %v", l0, l1, err)
			}
			g0, g1, err := r.ToL(x, z)
			if err != nil {
				t.Fatalf("ToL(%v, %v): %v", x, z, err)
			}
			if math.Abs(g0-l0) > 1e-9 || math.Abs(g1-l1) > 1e-9 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", l0, l1, g0, g1)
			}
		}
	}
}

func TestRegionToXZ(t *testing.T) {
	r, err := NewRegionInterpolator(squareRegion)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		l0, l1 float64
		x, z   float64
	}{
		{0, 0, 4, -1},
		{1, 1, 6, 1},
		{0.5, 0.5, 5, 0},
		{-1, 2, 4, 1}, // inputs clamp into the unit square
	}
	for _, tt := range tests {
		x, z, err := r.ToXZ(tt.l0, tt.l1)
		if err != nil {
			t.Fatalf("ToXZ(%v, %v): %v", tt.l0, tt.l1, err)
		}
		if math.Abs(x-tt.x) > 1e-12 || math.Abs(z-tt.z) > 1e-12 {
			t.Errorf("ToXZ(%v, %v) = (%v, %v), want (%v, %v)", tt.l0, tt.l1, x, z, tt.x, tt.z)
		}
	}
}

func TestRegionDegenerateVertices(t *testing.T) {
	r, err := NewRegionInterpolator(diamondRegion)
	if err != nil {
		t.Fatal(err)
	}

	x, z, err := r.ToXZ(0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x) > 1e-12 || math.Abs(z-1) > 1e-12 {
		t.Errorf("ToXZ(0.5, 1) = (%v, %v), want (0, 1)", x, z)
	}

	// Top vertex lands on l0 = 1, bottom vertex on l0 = 0.
	l0, l1, err := r.ToL(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if l0 != 1 || l1 != 1 {
		t.Errorf("ToL(0, 1) = (%v, %v), want (1, 1)", l0, l1)
	}
	l0, l1, err = r.ToL(0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if l0 != 0 || l1 != 0 {
		t.Errorf("ToL(0, -1) = (%v, %v), want (0, 0)", l0, l1)
	}
}

func TestRegionToLClampsOutside(t *testing.T) {
	r, err := NewRegionInterpolator(squareRegion)
	if err != nil {
		t.Fatal(err)
	}

	// Point beyond the right edge clamps across the chord.
	l0, l1, err := r.ToL(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if l0 != 1 || math.Abs(l1-0.5) > 1e-12 {
		t.Errorf("ToL(10, 0) = (%v, %v), want (1, 0.5)", l0, l1)
	}

	// Point above the region misses the cut at its own height; the recut
	// at the clamped height finds the top chord.
	l0, l1, err = r.ToL(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(l0-0.5) > 1e-12 || l1 != 1 {
		t.Errorf("ToL(5, 5) = (%v, %v), want (0.5, 1)", l0, l1)
	}
}
