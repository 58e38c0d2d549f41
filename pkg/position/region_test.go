package position

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/coilpos/pkg/coil"
	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

func twoRegionMapper(t *testing.T) *RegionMapper {
	t.Helper()
	m, err := NewRegionMapper(map[string]geometry.Polygon{
		"R_1": {{X: 4, Z: -1}, {X: 6, Z: -1}, {X: 6, Z: 1}, {X: 4, Z: 1}},
		"R_2": {{X: 0, Z: 0}, {X: 2, Z: 0}, {X: 2, Z: 4}, {X: 0, Z: 4}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewRegionMapperEmpty(t *testing.T) {
	_, err := NewRegionMapper(nil, nil)
	if !errors.Is(err, errors.CodeMissingRegions) {
		t.Errorf("error = %v, want CodeMissingRegions", err)
	}
}

func TestNewRegionMapperNonConvex(t *testing.T) {
	_, err := NewRegionMapper(map[string]geometry.Polygon{
		"R_1": {{X: 0, Z: 0}, {X: 2, Z: 0}, {X: 2, Z: 2}, {X: 1, Z: 2}, {X: 1, Z: 1}, {X: 0, Z: 1}},
	}, nil)
	if !errors.Is(err, errors.CodeNotConvex) {
		t.Errorf("error = %v, want CodeNotConvex", err)
	}
}

func TestRegionNameNormalisation(t *testing.T) {
	poly := geometry.Polygon{{X: 4, Z: -1}, {X: 6, Z: -1}, {X: 6, Z: 1}, {X: 4, Z: 1}}

	// Coil-form names bind to the region with the same index.
	m, err := NewRegionMapper(map[string]geometry.Polygon{"PF_3": poly}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := coil.Key{Kind: coil.KindRegion, Index: 3}
	if keys := m.Keys(); len(keys) != 1 || keys[0] != want {
		t.Errorf("Keys() = %v, want [%v]", keys, want)
	}
	if _, err := m.Region("R_3"); err != nil {
		t.Errorf("Region(R_3): %v", err)
	}
	if _, err := m.Region("PF_3"); err != nil {
		t.Errorf("Region(PF_3): %v", err)
	}

	for _, name := range []string{"CS_1", "banana", "R_0"} {
		if err := m.AddRegion(name, poly); !errors.Is(err, errors.CodeBadKey) {
			t.Errorf("AddRegion(%q) error = %v, want CodeBadKey", name, err)
		}
	}
}

func TestRegionMapperKeysSorted(t *testing.T) {
	m := twoRegionMapper(t)
	if err := m.AddRegion("R_5", geometry.Polygon{{X: 0, Z: 0}, {X: 1, Z: 0}, {X: 1, Z: 1}, {X: 0, Z: 1}}); err != nil {
		t.Fatal(err)
	}
	keys := m.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i].Index <= keys[i-1].Index {
			t.Fatalf("Keys() = %v not sorted by index", keys)
		}
	}
}

func TestRegionGetLMap(t *testing.T) {
	m := twoRegionMapper(t)
	set := coil.NewSet()
	coils := []*coil.Coil{
		{Key: coil.Key{Kind: coil.KindPF, Index: 1}, X: 5, Z: 0},
		{Key: coil.Key{Kind: coil.KindPF, Index: 2}, X: 0.5, Z: 1},
	}
	for _, c := range coils {
		if err := set.Add(c); err != nil {
			t.Fatal(err)
		}
	}

	l, lb, ub, err := m.GetLMap(set)
	if err != nil {
		t.Fatal(err)
	}
	approx := cmpopts.EquateApprox(0, 1e-12)
	if d := cmp.Diff([]float64{0.5, 0.5, 0.25, 0.25}, l, approx); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]float64{0, 0, 0, 0}, lb, approx); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]float64{1, 1, 1, 1}, ub, approx); d != "" {
		t.Error(d)
	}
}

func TestRegionGetLMapClampsOutsideCoil(t *testing.T) {
	m := twoRegionMapper(t)
	set := coil.NewSet()
	coils := []*coil.Coil{
		// Both coils sit outside their regions; positions clamp to [0, 1].
		{Key: coil.Key{Kind: coil.KindPF, Index: 1}, X: 100, Z: 0},
		{Key: coil.Key{Kind: coil.KindPF, Index: 2}, X: -3, Z: 2},
	}
	for _, c := range coils {
		if err := set.Add(c); err != nil {
			t.Fatal(err)
		}
	}

	l, lb, ub, err := m.GetLMap(set)
	if err != nil {
		t.Fatal(err)
	}
	for i := range l {
		if l[i] < lb[i] || l[i] > ub[i] {
			t.Errorf("l[%d] = %v outside (%v, %v)", i, l[i], lb[i], ub[i])
		}
	}
	if l[0] != 1 {
		t.Errorf("l[0] = %v, want 1 for a coil beyond the right edge", l[0])
	}
}

func TestRegionGetLMapMissingCoil(t *testing.T) {
	var buf bytes.Buffer
	m, err := NewRegionMapper(map[string]geometry.Polygon{
		"R_1": {{X: 4, Z: -1}, {X: 6, Z: -1}, {X: 6, Z: 1}, {X: 4, Z: 1}},
	}, log.New(&buf))
	if err != nil {
		t.Fatal(err)
	}

	// Empty set: the region keeps its (zero-valued) last position and the
	// miss is logged rather than failing the whole map.
	l, _, _, err := m.GetLMap(coil.NewSet())
	if err != nil {
		t.Fatal(err)
	}
	if len(l) != 2 || l[0] != 0 || l[1] != 0 {
		t.Errorf("l = %v, want [0 0]", l)
	}
	if !strings.Contains(buf.String(), "keeping last position") {
		t.Errorf("expected a missing-coil warning, got %q", buf.String())
	}
}

func TestSizeCurrentLimits(t *testing.T) {
	m, err := NewRegionMapper(map[string]geometry.Polygon{
		"R_1": {{X: 4, Z: -1}, {X: 6, Z: -1}, {X: 6, Z: 1}, {X: 4, Z: 1}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	set := coil.NewSet()
	key := coil.Key{Kind: coil.KindPF, Index: 1}
	if err := set.Add(&coil.Coil{Key: key, X: 5, Z: 0}); err != nil {
		t.Fatal(err)
	}

	limits, err := m.SizeCurrentLimits(set)
	if err != nil {
		t.Fatal(err)
	}
	// Centred in the 2×2 region the inscribed rectangle has half-extents
	// (1, 1), so the limit is JMax times its 4 m² area.
	want := coil.JMax * 4
	if len(limits) != 1 || math.Abs(limits[0]-want) > 1e-3 {
		t.Errorf("limits = %v, want [%v]", limits, want)
	}
}

func TestSizeCurrentLimitsMissingCoil(t *testing.T) {
	m := twoRegionMapper(t)
	_, err := m.SizeCurrentLimits(coil.NewSet())
	if !errors.Is(err, errors.CodeBadKey) {
		t.Errorf("error = %v, want CodeBadKey", err)
	}
}
