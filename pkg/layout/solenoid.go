package layout

import (
	"github.com/matzehuels/coilpos/pkg/coil"
)

// Solenoid is an ordered stack of central-solenoid modules. Modules are
// stored bottom-to-top and keyed CS_1 (lowest) upward; adjacent modules
// are separated by Gap and the union of their spans lies within
// [ZMin, ZMax].
type Solenoid struct {
	X       float64 // radial centre of the solenoid [m]
	Tk      float64 // winding-pack half thickness [m]
	ZMin    float64
	ZMax    float64
	Gap     float64
	Modules []*coil.Coil
}

// Equispace builds a solenoid of n equal-height modules between zmin and
// zmax with a fixed inter-module gap (the ITER-style layout).
func Equispace(x, tk, zmin, zmax float64, n int, gap float64) *Solenoid {
	s := &Solenoid{X: x, Tk: tk, ZMin: zmin, ZMax: zmax, Gap: gap}
	if n <= 0 {
		return s
	}
	h := ((zmax - zmin) - float64(n-1)*gap) / float64(n)
	for i := 0; i < n; i++ {
		// Stack from the top; module 0 here is the uppermost.
		top := zmax - float64(i)*(h+gap)
		s.Modules = append(s.Modules, &coil.Coil{
			X:  x,
			Z:  top - h/2,
			DX: tk,
			DZ: h / 2,
		})
	}
	s.finalize()
	return s
}

// Demospace builds the DEMO-style asymmetric stack: a double-height
// central module with graduated spacing mirrored above and below it.
// n must be odd and greater than 2; Positioner.DemospaceCS enforces that
// and degrades to Equispace otherwise.
func Demospace(x, tk, zmin, zmax float64, n int, gap float64) *Solenoid {
	s := &Solenoid{X: x, Tk: tk, ZMin: zmin, ZMax: zmax, Gap: gap}
	length := ((zmax - zmin) - float64(n-1)*gap) / float64(n+1)

	// Module centres measured down from zmax in units of length/2, with
	// the post-centre modules shifted to make room for the tall one.
	for i := 0; i < n; i++ {
		a := float64(2*i + 1)
		if i > n/2 {
			a += 2
		}
		dz := length / 2
		if i == n/2 {
			a = float64(n + 1)
			dz = length
		}
		s.Modules = append(s.Modules, &coil.Coil{
			X:  x,
			Z:  zmax - a*length/2 - float64(i)*gap,
			DX: tk,
			DZ: dz,
		})
	}
	s.finalize()
	return s
}

// finalize reverses the top-down construction order so modules run
// bottom-to-top, and assigns CS keys in that order.
func (s *Solenoid) finalize() {
	for i, j := 0, len(s.Modules)-1; i < j; i, j = i+1, j-1 {
		s.Modules[i], s.Modules[j] = s.Modules[j], s.Modules[i]
	}
	for i, m := range s.Modules {
		m.Key = coil.Key{Kind: coil.KindCS, Index: i + 1}
	}
}

// Height returns the total conductor height of the stack (module heights,
// excluding gaps).
func (s *Solenoid) Height() float64 {
	total := 0.0
	for _, m := range s.Modules {
		total += 2 * m.DZ
	}
	return total
}
