// Package blend implements the alpha-over compositing used by the trace
// canvas and by the final 8-bit composite.
//
// Canvas pixels carry a 16-bit luminance and an alpha stored as a 32-bit
// optical depth code: a straight alpha α corresponds to depth
// -DepthScale*ln(1-α). Over-compositing multiplies transmittances (1-α),
// which in depth space is integer addition. Saturating addition of
// non-negative integers is associative and commutative, so any number of
// canvases fold to the same result in any order or grouping.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "math"

// DepthScale is the number of depth codes per unit of optical depth.
//
// The smallest stroke alpha of 1/65535 spans 4096 codes, so every opacity
// and every partial coverage reaches the canvas. An alpha that rounds
// below one code still adds one.
const DepthScale = 1 << 28

// MaxDepth is the saturation value of the depth code. It is an optical
// depth of 16, whose alpha rounds to 65535.
const MaxDepth = math.MaxUint32

// alphaOf returns the 16-bit straight alpha of a depth code.
func alphaOf(depth uint32) uint16 {
	if depth == 0 {
		return 0
	}
	a := -math.Expm1(-float64(depth) / DepthScale)
	return uint16(math.Round(a * math.MaxUint16))
}

// alphaFloat returns the straight alpha of a depth code in [0, 1].
func alphaFloat(depth uint32) float64 {
	return -math.Expm1(-float64(depth) / DepthScale)
}

// DepthOf returns the depth code of a straight alpha in [0, 1].
// Values at or below zero (and NaN) map to zero, values at or above one
// saturate. Any positive alpha maps to at least one code.
func DepthOf(alpha float64) uint32 {
	if !(alpha > 0) {
		return 0
	}
	if alpha >= 1 {
		return MaxDepth
	}
	d := math.Round(-DepthScale * math.Log1p(-alpha))
	if d >= MaxDepth {
		return MaxDepth
	}
	return max(uint32(d), 1)
}

// addSat adds two depth codes, saturating at MaxDepth.
func addSat(a, b uint32) uint32 {
	s := uint64(a) + uint64(b)
	if s > MaxDepth {
		return MaxDepth
	}
	return uint32(s)
}
