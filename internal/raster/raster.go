// Package raster draws anti-aliased line segments into pixel buffers.
//
// The rasterizer only computes per-pixel coverage. What a covered pixel
// becomes is decided by a caller-supplied BlendFunc, so the same line code
// serves any pixel format.
package raster

import "math"

// Pixmap is a rectangular pixel buffer with pixels of type P.
type Pixmap[P any] interface {
	Width() int
	Height() int
	Pixel(x, y int) P
	SetPixel(x, y int, p P)
}

// BlendFunc combines the line color c with the existing pixel dst.
// coverage is the fraction of the pixel covered by the line, in (0, 1].
type BlendFunc[C, P any] func(c C, dst P, coverage float32) P

// MaxCoord bounds the pixel coordinates accepted by DrawLineAA. It is the
// int32 range, so coordinates fit an int on every platform.
// Callers converting from floating point should clip to this range first.
const MaxCoord = math.MaxInt32

// ClampCoord converts a floating-point pixel position to an integer
// coordinate the way a saturating float-to-int cast does: truncation
// toward zero, saturation at ±MaxCoord, and NaN mapped to zero.
func ClampCoord(v float64) int {
	switch {
	case v != v:
		return 0
	case v >= MaxCoord:
		return MaxCoord
	case v <= -MaxCoord:
		return -MaxCoord
	}
	return int(v)
}

// ClipSegment clips the segment (x0, y0)-(x1, y1) to the square [lo, hi]²
// with the Liang-Barsky algorithm. The clipped endpoints lie on the
// original segment, so its direction is kept. ok is false when no part of
// the segment lies inside the square or a coordinate is not finite.
func ClipSegment(x0, y0, x1, y1, lo, hi float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - lo},
		{dx, hi - x0},
		{-dy, y0 - lo},
		{dy, hi - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			// Parallel to this edge: inside or entirely out.
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
