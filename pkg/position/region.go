package position

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coilpos/pkg/coil"
	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
)

// RegionMapper adapts a family of convex positioning regions for a
// positional optimiser. Each region is bound to exactly one PF coil by
// index: region R_3 positions coil PF_3. Regions have no exclusion
// concept — the convex boundary itself is the only constraint, so every
// axis is bounded by [0, 1].
type RegionMapper struct {
	regions map[coil.Key]*RegionInterpolator
	order   []coil.Key // region keys sorted by index

	lValues     map[coil.Key][2]float64
	maxCurrents map[coil.Key]float64

	logger *log.Logger
}

// NewRegionMapper builds a mapper from named regions. Names may use
// either the region form "R_<n>" or the coil form "PF_<n>"; both
// normalise to the region key. Returns CodeMissingRegions for an empty
// input, CodeBadKey for an unrecognised name and CodeNotConvex for a
// region failing the convexity check.
func NewRegionMapper(regions map[string]geometry.Polygon, logger *log.Logger) (*RegionMapper, error) {
	if len(regions) == 0 {
		return nil, errors.New(errors.CodeMissingRegions, "no positioning regions supplied")
	}
	m := &RegionMapper{
		regions:     make(map[coil.Key]*RegionInterpolator),
		lValues:     make(map[coil.Key][2]float64),
		maxCurrents: make(map[coil.Key]float64),
		logger:      logger,
	}
	for name, poly := range regions {
		if err := m.AddRegion(name, poly); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *RegionMapper) log() *log.Logger {
	if m.logger != nil {
		return m.logger
	}
	return log.Default()
}

// AddRegion inserts one more region without disturbing existing entries.
func (m *RegionMapper) AddRegion(name string, poly geometry.Polygon) error {
	key, err := regionKey(name)
	if err != nil {
		return err
	}
	interp, err := NewRegionInterpolator(poly)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "region %s", key)
	}
	if _, ok := m.regions[key]; !ok {
		m.order = append(m.order, key)
		sort.Slice(m.order, func(i, j int) bool { return m.order[i].Index < m.order[j].Index })
	}
	m.regions[key] = interp
	return nil
}

// NumRegions returns the number of registered regions.
func (m *RegionMapper) NumRegions() int { return len(m.regions) }

// Keys returns the region keys in index order.
func (m *RegionMapper) Keys() []coil.Key {
	out := make([]coil.Key, len(m.order))
	copy(out, m.order)
	return out
}

// regionKey normalises a region or coil name to the region key.
func regionKey(name string) (coil.Key, error) {
	key, err := coil.ParseKey(name)
	if err != nil {
		return coil.Key{}, err
	}
	switch key.Kind {
	case coil.KindRegion:
		return key, nil
	case coil.KindPF:
		return key.AsRegion(), nil
	}
	return coil.Key{}, errors.New(errors.CodeBadKey, "name %q is neither a region nor a PF coil", name)
}

// Region returns the interpolator for the named region; the name may be
// in either region or coil form.
func (m *RegionMapper) Region(name string) (*RegionInterpolator, error) {
	key, err := regionKey(name)
	if err != nil {
		return nil, err
	}
	interp, ok := m.regions[key]
	if !ok {
		return nil, errors.New(errors.CodeBadKey, "region %s not registered", key)
	}
	return interp, nil
}

// LToXZ converts normalised coordinates to physical ones for one region.
func (m *RegionMapper) LToXZ(name string, l0, l1 float64) (x, z float64, err error) {
	interp, err := m.Region(name)
	if err != nil {
		return 0, 0, err
	}
	return interp.ToXZ(l0, l1)
}

// XZToL converts physical coordinates to normalised ones for one region.
func (m *RegionMapper) XZToL(name string, x, z float64) (l0, l1 float64, err error) {
	interp, err := m.Region(name)
	if err != nil {
		return 0, 0, err
	}
	return interp.ToL(x, z)
}

// GetLMap computes the flattened (L0, L1) position vector for every
// region's bound coil, with per-axis bounds fixed at [0, 1]. A region
// whose coil is missing from the set keeps its last-known position and
// logs a warning. Initial positions are clamped into the unit square, so
// lower ≤ position ≤ upper always holds.
func (m *RegionMapper) GetLMap(set *coil.Set) (l, lb, ub []float64, err error) {
	for _, key := range m.order {
		c, ok := set.Get(key.AsCoil())
		if !ok {
			m.log().Warn("coil not found in set, keeping last position", "coil", key.AsCoil())
			continue
		}
		l0, l1, err := m.regions[key].ToL(c.X, c.Z)
		if err != nil {
			return nil, nil, nil, err
		}
		m.lValues[key] = [2]float64{l0, l1}
	}

	l = make([]float64, 0, 2*len(m.order))
	for _, key := range m.order {
		v := m.lValues[key]
		l = append(l, clamp01(v[0]), clamp01(v[1]))
	}
	lb = make([]float64, len(l))
	ub = make([]float64, len(l))
	for i := range ub {
		ub[i] = 1
	}
	return l, lb, ub, nil
}

// SizeCurrentLimits derives the maximum allowable current for each
// region's coil: the largest axis-aligned rectangle centred on the coil's
// current position that fits inside the region bounds the coil's area,
// and the current-per-unit-area rule converts that area to a current.
// Results are ordered like Keys.
func (m *RegionMapper) SizeCurrentLimits(set *coil.Set) ([]float64, error) {
	out := make([]float64, 0, len(m.order))
	for _, key := range m.order {
		c, ok := set.Get(key.AsCoil())
		if !ok {
			return nil, errors.New(errors.CodeBadKey, "coil %s not in set", key.AsCoil())
		}
		dx, dz := m.regions[key].Polygon().InscribedRect(geometry.Pt(c.X, c.Z))
		limit := c.MaxCurrent(dx, dz)
		m.maxCurrents[key] = limit
		out = append(out, limit)
	}
	return out, nil
}
