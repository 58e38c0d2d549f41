// Package coil describes the physical magnets the positioning core moves
// around: individual coils, the coil set they live in, and the structured
// keys that identify them.
//
// The positioning core only ever reads and writes a coil's position (x, z)
// and size (dx, dz); currents are owned by the surrounding equilibrium
// machinery.
package coil

import (
	"math"

	"github.com/matzehuels/coilpos/pkg/errors"
)

// JMax is the maximum engineering current density used for the
// current-per-unit-area sizing rule, in A/m². NbTi-class conductor.
const JMax = 12.5e6

// Coil is a single magnet: a PF coil or a CS module. X, Z locate the
// winding-pack centre; DX and DZ are the half-width and half-height.
type Coil struct {
	Key          Key
	X, Z         float64
	DX, DZ       float64
	Current      float64
	Controllable bool
}

// ConductorRadius returns the equivalent-area conductor radius
// sqrt(dx·dz/π), used as the collision margin when nudging a coil off an
// exclusion-zone boundary.
func (c *Coil) ConductorRadius() float64 {
	return math.Sqrt(c.DX * c.DZ / math.Pi)
}

// MaxCurrent returns the largest current the coil may carry if its
// half-extents were grown to (dx, dz), under the current-per-unit-area
// rule I = JMax · area. Bounding current this way bounds size indirectly.
func (c *Coil) MaxCurrent(dx, dz float64) float64 {
	return JMax * 4 * dx * dz
}

// Set is an ordered collection of coils keyed by their structured name.
// Insertion order is preserved so position vectors are deterministic.
type Set struct {
	coils map[Key]*Coil
	order []Key
}

// NewSet returns an empty coil set.
func NewSet() *Set {
	return &Set{coils: make(map[Key]*Coil)}
}

// Add inserts a coil. Re-adding an existing key is a configuration error.
func (s *Set) Add(c *Coil) error {
	if _, ok := s.coils[c.Key]; ok {
		return errors.New(errors.CodeBadKey, "coil %s already in set", c.Key)
	}
	s.coils[c.Key] = c
	s.order = append(s.order, c.Key)
	return nil
}

// Get returns the coil with the given key.
func (s *Set) Get(k Key) (*Coil, bool) {
	c, ok := s.coils[k]
	return c, ok
}

// Coils returns the coils in insertion order.
func (s *Set) Coils() []*Coil {
	out := make([]*Coil, len(s.order))
	for i, k := range s.order {
		out[i] = s.coils[k]
	}
	return out
}

// Keys returns the coil keys in insertion order.
func (s *Set) Keys() []Key {
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}

// OfKind returns the coils of one kind, in insertion order.
func (s *Set) OfKind(kind Kind) []*Coil {
	var out []*Coil
	for _, k := range s.order {
		if k.Kind == kind {
			out = append(out, s.coils[k])
		}
	}
	return out
}

// NumPF returns the number of PF coils in the set.
func (s *Set) NumPF() int { return len(s.OfKind(KindPF)) }

// NumCS returns the number of CS modules in the set.
func (s *Set) NumCS() int { return len(s.OfKind(KindCS)) }
