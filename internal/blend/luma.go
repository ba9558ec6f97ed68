package blend

import "math"

// LumaA is a canvas pixel: luminance plus alpha in depth encoding.
// The zero value is fully transparent.
type LumaA struct {
	// Y is the straight (non-premultiplied) luminance.
	Y uint16

	// Depth is the alpha as an optical depth code, see DepthOf.
	Depth uint32
}

// Alpha returns the 16-bit straight alpha of p.
func (p LumaA) Alpha() uint16 {
	return alphaOf(p.Depth)
}

// Over composites src over dst with straight alpha:
//
//	αout = αs + αd(1-αs)
//	Yout = (Ys·αs + Yd·αd(1-αs)) / αout
//
// The alpha part is exact in depth space. When both luminances agree the
// result keeps that luminance bit for bit, which makes Over a commutative
// monoid on pixels of equal luminance with the zero pixel as identity.
func Over(src, dst LumaA) LumaA {
	if src.Depth == 0 {
		return dst
	}
	if dst.Depth == 0 {
		return src
	}

	out := LumaA{Y: src.Y, Depth: addSat(src.Depth, dst.Depth)}
	if src.Y == dst.Y {
		return out
	}

	as := alphaFloat(src.Depth)
	ad := alphaFloat(dst.Depth)
	wd := ad * (1 - as)
	if total := as + wd; total > 0 {
		y := (float64(src.Y)*as + float64(dst.Y)*wd) / total
		out.Y = uint16(math.Round(min(y, math.MaxUint16)))
	}
	return out
}

// Stroke is the color of a line: straight luminance and linear alpha.
type Stroke struct {
	Y     uint16
	Alpha uint16
}

// BlendStroke scales the stroke alpha by the rasterizer coverage and
// composites the result over dst. It has the shape of a
// raster.BlendFunc[Stroke, LumaA].
func BlendStroke(s Stroke, dst LumaA, coverage float32) LumaA {
	alpha := float64(s.Alpha) / math.MaxUint16 * float64(coverage)
	return Over(LumaA{Y: s.Y, Depth: DepthOf(alpha)}, dst)
}
