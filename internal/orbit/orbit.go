// Package orbit iterates the generalized Mandelbrot map z -> z^p + c.
//
// Values are plain complex128. The exponent p is real and need not be an
// integer; non-integer powers use the principal branch in polar form,
// r^p * (cos(p*θ) + i*sin(p*θ)), so NaN and Inf propagate per IEEE 754
// instead of failing.
package orbit

import (
	"math/cmplx"
)

// MaskThreshold is the squared-norm escape threshold of the classic
// escape-time test. It does not depend on Map.Bound.
const MaskThreshold = 4.0

// Pow raises z to the real power p.
//
// p == 2 takes the exact z*z path. Zero raised to a positive power is zero.
func Pow(z complex128, p float64) complex128 {
	if p == 2 {
		return z * z
	}
	return cmplx.Pow(z, complex(p, 0))
}

// NormSqr returns re² + im².
func NormSqr(z complex128) float64 {
	re, im := real(z), imag(z)
	return re*re + im*im
}

// Map is one configuration of the dynamical map.
type Map struct {
	// Pow is the exponent of the map.
	Pow float64

	// Bound is the per-component escape threshold used by Trace.
	Bound float64

	// Limit is the maximum number of map applications.
	Limit int
}

// Step applies the map once.
func (m Map) Step(z, c complex128) complex128 {
	return Pow(z, m.Pow) + c
}

// escaped reports whether either component of z exceeds the bound.
// NaN components never compare greater, so a NaN orbit stays trapped.
func (m Map) escaped(z complex128) bool {
	re, im := real(z), imag(z)
	if re < 0 {
		re = -re
	}
	if im < 0 {
		im = -im
	}
	return re > m.Bound || im > m.Bound
}

// Trace records the orbit of c starting from z0 = 0.
//
// The returned slice holds z0 followed by every value produced by the map,
// so its length is in [1, Limit+1]. Iteration stops right after a value
// with |Re| > Bound or |Im| > Bound is recorded; escaped reports whether
// that happened. buf is truncated and reused when its capacity allows.
func (m Map) Trace(c complex128, buf []complex128) (points []complex128, escaped bool) {
	limit := max(m.Limit, 0)
	if cap(buf) < limit+1 {
		buf = make([]complex128, 0, limit+1)
	}
	points = buf[:0]

	var z complex128
	points = append(points, z)
	for range limit {
		z = m.Step(z, c)
		points = append(points, z)
		if m.escaped(z) {
			return points, true
		}
	}
	return points, false
}

// Escapes runs the classic escape-time test for c: up to Limit
// applications from z = 0, escaping once |z|² > MaskThreshold.
func (m Map) Escapes(c complex128) bool {
	var z complex128
	for range max(m.Limit, 0) {
		z = m.Step(z, c)
		if NormSqr(z) > MaskThreshold {
			return true
		}
	}
	return false
}
