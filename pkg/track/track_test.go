package track

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

// line returns a straight track from (0, 0) to (10, 0) with n vertices.
func line(t *testing.T, n int) *Track {
	t.Helper()
	pts := make([]geometry.Point, n)
	for i := range pts {
		pts[i] = geometry.Pt(10*float64(i)/float64(n-1), 0)
	}
	tr, err := New(pts)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

// semicircle returns a right half-circle of radius 5 around the origin,
// running from the top (θ = 90°) down to the bottom (θ = −90°).
func semicircle(t *testing.T) *Track {
	t.Helper()
	pts := make([]geometry.Point, 181)
	for i := range pts {
		theta := (90 - float64(i)) * math.Pi / 180
		pts[i] = geometry.Pt(5*math.Cos(theta), 5*math.Sin(theta))
	}
	tr, err := New(pts)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestNewRejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		pts  []geometry.Point
	}{
		{"Empty", nil},
		{"Single", []geometry.Point{geometry.Pt(1, 1)}},
		{"AllDuplicates", []geometry.Point{geometry.Pt(1, 1), geometry.Pt(1, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.pts); !errors.Is(err, errors.CodeEmptyTrack) {
				t.Errorf("New() error = %v, want CodeEmptyTrack", err)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	tr := line(t, 11)
	tests := []struct {
		l    float64
		want geometry.Point
	}{
		{0, geometry.Pt(0, 0)},
		{0.25, geometry.Pt(2.5, 0)},
		{1, geometry.Pt(10, 0)},
		{-0.5, geometry.Pt(0, 0)},  // clamps
		{1.5, geometry.Pt(10, 0)},  // clamps
		{0.33, geometry.Pt(3.3, 0)},
	}
	for _, tt := range tests {
		got := tr.Position(tt.l)
		if d := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
			t.Errorf("Position(%v): %s", tt.l, d)
		}
	}
}

func TestParamRoundTrip(t *testing.T) {
	for _, tr := range []*Track{line(t, 11), semicircle(t)} {
		for l := 0.0; l <= 1.0; l += 0.05 {
			p := tr.Position(l)
			got := tr.Param(p.X, p.Z)
			if math.Abs(got-l) > 1e-6 {
				t.Errorf("Param(Position(%v)) = %v", l, got)
			}
		}
	}
}

func TestParamOffTrack(t *testing.T) {
	tr := line(t, 11)
	// A point above the track projects straight down onto it.
	if got := tr.Param(3.3, 2); math.Abs(got-0.33) > 1e-6 {
		t.Errorf("Param(3.3, 2) = %v, want 0.33", got)
	}
	// Points beyond the ends clamp to the endpoints.
	if got := tr.Param(-5, 0); math.Abs(got) > 1e-6 {
		t.Errorf("Param(-5, 0) = %v, want 0", got)
	}
	if got := tr.Param(15, 1); math.Abs(got-1) > 1e-6 {
		t.Errorf("Param(15, 1) = %v, want 1", got)
	}
}

func TestLength(t *testing.T) {
	if got := line(t, 11).Length(); math.Abs(got-10) > 1e-12 {
		t.Errorf("Length() = %v, want 10", got)
	}
	// The inscribed polyline is slightly shorter than the arc π·r.
	got := semicircle(t).Length()
	want := 5 * math.Pi
	if got >= want || got < want-0.01 {
		t.Errorf("Length() = %v, want just under %v", got, want)
	}
}

func TestProject(t *testing.T) {
	tr := semicircle(t)
	ref := geometry.Pt(0, 0)
	tests := []struct {
		angle float64
		want  int
	}{
		{90, 0},    // top
		{45, 45},   // vertex at θ = 45°
		{0, 90},    // outboard midplane
		{-90, 180}, // bottom
	}
	for _, tt := range tests {
		got, err := tr.Project(ref, tt.angle)
		if err != nil {
			t.Fatalf("Project(%v): %v", tt.angle, err)
		}
		if got != tt.want {
			t.Errorf("Project(%v) = %d, want %d", tt.angle, got, tt.want)
		}
	}
}

func TestProjectMiss(t *testing.T) {
	tr := semicircle(t)
	_, err := tr.Project(geometry.Pt(0, 0), 170)
	if !errors.Is(err, errors.CodeNoProjection) {
		t.Errorf("Project(170) error = %v, want CodeNoProjection", err)
	}
}

func TestSub(t *testing.T) {
	tr := line(t, 11)
	sub, err := tr.Sub(2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(geometry.Pt(2, 0), sub.Start(), cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(geometry.Pt(8, 0), sub.End(), cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Error(d)
	}

	// Swapped indices behave identically.
	swapped, err := tr.Sub(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	if swapped.Length() != sub.Length() {
		t.Errorf("Sub(8,2).Length() = %v, want %v", swapped.Length(), sub.Length())
	}
}

func TestResample(t *testing.T) {
	tr := line(t, 2)
	dense, err := tr.Resample(5)
	if err != nil {
		t.Fatal(err)
	}
	if dense.NumPoints() != 5 {
		t.Fatalf("NumPoints() = %d, want 5", dense.NumPoints())
	}
	if math.Abs(dense.Length()-10) > 1e-9 {
		t.Errorf("Length() = %v, want 10", dense.Length())
	}

	if _, err := tr.Resample(1); !errors.Is(err, errors.CodeEmptyTrack) {
		t.Errorf("Resample(1) error = %v, want CodeEmptyTrack", err)
	}
}

func TestZRange(t *testing.T) {
	zmin, zmax := semicircle(t).ZRange()
	if math.Abs(zmin+5) > 1e-12 || math.Abs(zmax-5) > 1e-12 {
		t.Errorf("ZRange() = (%v, %v), want (-5, 5)", zmin, zmax)
	}
}
