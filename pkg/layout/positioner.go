// Package layout produces initial coil placements for ab-initio magnet
// design: equispaced PF coils along a boundary track and equispaced or
// DEMO-style central-solenoid stacks, composed into a full coil set.
package layout

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coilpos/pkg/coil"
	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/geometry"
	"github.com/matzehuels/coilpos/pkg/track"
)

// ReactorType selects the angular spread used when picking the uppermost
// and lowermost PF coil positions.
type ReactorType string

const (
	// Normal is a conventional-aspect-ratio tokamak.
	Normal ReactorType = "Normal"
	// ST is a spherical tokamak; its tighter geometry uses a smaller
	// angular multiplier.
	ST ReactorType = "ST"
)

// CSLayout selects how central-solenoid modules are stacked.
type CSLayout string

const (
	// ITER stacks equal-height modules.
	ITER CSLayout = "ITER"
	// DEMO stacks a double-height central module with graduated spacing.
	DEMO CSLayout = "DEMO"
)

// angular multipliers applied to atan(|δ|/κ) when placing the outermost
// PF coils.
const (
	spreadNormal = 1.6
	spreadST     = 1.2
)

// Positioner derives an initial coil set from reactor shape parameters.
// All fields are plain machine parameters; Track is the boundary the PF
// coils live on.
type Positioner struct {
	R0    float64 // major radius [m]
	A     float64 // aspect ratio
	Delta float64 // triangularity
	Kappa float64 // elongation

	Track *track.Track

	XCS  float64 // solenoid radial centre [m]
	TkCS float64 // solenoid half thickness [m]
	NPF  int
	NCS  int
	Gap  float64 // gap between CS modules [m]

	RType  ReactorType
	Layout CSLayout

	// Logger receives degenerate-input diagnostics. Defaults to
	// log.Default when nil.
	Logger *log.Logger
}

// DefaultGap is the CS inter-module gap used when Gap is unset.
const DefaultGap = 0.1

func (p *Positioner) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

func (p *Positioner) gap() float64 {
	if p.Gap > 0 {
		return p.Gap
	}
	return DefaultGap
}

// EquispacePF places n PF coils at equal normalised arclength along the
// sub-track between the upper and lower angular cutoffs. The cutoffs
// mirror the plasma X-points: ±(90° + m·atan(|δ|/κ)) seen from the
// reference point (R0, 0), with m depending on the reactor type. A cutoff
// whose projection misses the track falls back to the track's first or
// last vertex; the placement never fails on that account.
func (p *Positioner) EquispacePF(tr *track.Track, n int) []*coil.Coil {
	a := math.Atan(math.Abs(p.Delta)/p.Kappa) * 180 / math.Pi
	mult := spreadNormal
	if p.RType == ST {
		mult = spreadST
	}
	upper := 90 + a*mult
	lower := -90 - a*mult

	ref := geometry.Pt(p.R0, 0)
	iu, err := tr.Project(ref, upper)
	if err != nil {
		p.logger().Debug("upper PF cutoff off-track, using track start", "angle", upper)
		iu = 0
	}
	il, err := tr.Project(ref, lower)
	if err != nil {
		p.logger().Debug("lower PF cutoff off-track, using track end", "angle", lower)
		il = tr.NumPoints() - 1
	}

	sub, err := tr.Sub(iu, il)
	if err != nil {
		// Degenerate cutoff window; place along the full track instead.
		sub = tr
	}

	coils := make([]*coil.Coil, n)
	for i := 0; i < n; i++ {
		l := 0.0
		if n > 1 {
			l = float64(i) / float64(n-1)
		}
		pt := sub.Position(l)
		coils[i] = &coil.Coil{
			Key:          coil.Key{Kind: coil.KindPF, Index: i + 1},
			X:            pt.X,
			Z:            pt.Z,
			Controllable: true,
		}
	}
	return coils
}

// EquispaceCS builds a solenoid of n equal-height modules between zmin
// and zmax.
func (p *Positioner) EquispaceCS(zmin, zmax float64, n int) *Solenoid {
	return Equispace(p.XCS, p.TkCS, zmin, zmax, n, p.gap())
}

// DemospaceCS builds the DEMO-style asymmetric solenoid stack. The layout
// requires an odd module count greater than two; anything else is logged
// and silently downgraded to the equispaced stack.
func (p *Positioner) DemospaceCS(zmin, zmax float64, n int) *Solenoid {
	if n <= 2 || n%2 == 0 {
		p.logger().Warn("DEMO CS layout needs an odd module count above two; falling back to ITER spacing", "n_cs", n)
		return p.EquispaceCS(zmin, zmax, n)
	}
	return Demospace(p.XCS, p.TkCS, zmin, zmax, n, p.gap())
}

// MakeCoilSet composes the PF and CS layouts into one coil set. PF coils
// get the square starter cross-section dCoil × dCoil; CS modules keep the
// extents their stack assigned. The solenoid z-extent is symmetric about
// the midplane, spanning ± the track's top.
//
// Returns a CodeUnknownLayout error for a CS layout keyword outside
// {ITER, DEMO}.
func (p *Positioner) MakeCoilSet(dCoil float64) (*coil.Set, error) {
	set := coil.NewSet()
	for _, c := range p.EquispacePF(p.Track, p.NPF) {
		c.DX = dCoil / 2
		c.DZ = dCoil / 2
		if err := set.Add(c); err != nil {
			return nil, err
		}
	}

	if p.NCS == 0 {
		return set, nil
	}

	_, zmax := p.Track.ZRange()
	zmin := -zmax
	var sol *Solenoid
	switch p.Layout {
	case ITER:
		sol = p.EquispaceCS(zmin, zmax, p.NCS)
	case DEMO:
		sol = p.DemospaceCS(zmin, zmax, p.NCS)
	default:
		return nil, errors.New(errors.CodeUnknownLayout, "CS layout %q: choose ITER or DEMO", p.Layout)
	}
	for _, m := range sol.Modules {
		m.Controllable = true
		if err := set.Add(m); err != nil {
			return nil, err
		}
	}
	return set, nil
}
