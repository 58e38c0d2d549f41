package track

import "math"

const (
	brentTol   = 1e-10
	brentIters = 100
	invPhi     = 0.3819660112501051 // 2 - golden ratio
)

// brentMin minimises f over the closed interval [a, b] using Brent's
// method: parabolic interpolation where the function cooperates, golden
// section otherwise. The objective here is a smooth, bounded distance
// function, so the fixed iteration budget always suffices; no retries are
// performed.
func brentMin(f func(float64) float64, a, b float64) float64 {
	x := a + invPhi*(b-a)
	w, v := x, x
	fx := f(x)
	fw, fv := fx, fx
	var d, e float64

	for i := 0; i < brentIters; i++ {
		m := 0.5 * (a + b)
		tol := brentTol*math.Abs(x) + 1e-15
		if math.Abs(x-m) <= 2*tol-0.5*(b-a) {
			break
		}

		useGolden := true
		if math.Abs(e) > tol {
			// Fit a parabola through x, v, w.
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			eOld := e
			e = d
			if math.Abs(p) < math.Abs(0.5*q*eOld) && p > q*(a-x) && p < q*(b-x) {
				d = p / q
				u := x + d
				if u-a < 2*tol || b-u < 2*tol {
					d = math.Copysign(tol, m-x)
				}
				useGolden = false
			}
		}
		if useGolden {
			if x < m {
				e = b - x
			} else {
				e = a - x
			}
			d = invPhi * e
		}

		var u float64
		if math.Abs(d) >= tol {
			u = x + d
		} else {
			u = x + math.Copysign(tol, d)
		}
		fu := f(u)

		if fu <= fx {
			if u < x {
				b = x
			} else {
				a = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}
	return x
}
