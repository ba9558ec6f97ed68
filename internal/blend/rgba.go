package blend

import "image/color"

// OverNRGBA composites src over dst, both in straight (non-premultiplied)
// 8-bit color, using exact integer arithmetic:
//
//	αout = αs + αd(1-αs)
//	Cout = (Cs·αs + Cd·αd(1-αs)) / αout
//
// A fully transparent src returns dst unchanged, and an opaque dst stays
// opaque.
func OverNRGBA(src, dst color.NRGBA) color.NRGBA {
	if src.A == 0 {
		return dst
	}
	if src.A == 255 {
		return src
	}

	sa := uint32(src.A)
	// αd(1-αs) scaled by 255².
	wd := uint32(dst.A) * (255 - sa)
	outA := sa + uint32(mulDiv255Exact(dst.A, byte(255-sa)))
	if outA == 0 {
		return color.NRGBA{}
	}

	ws := sa * 255
	den := ws + wd
	mix := func(s, d uint8) uint8 {
		return uint8(divRound(uint32(s)*ws+uint32(d)*wd, den))
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(outA),
	}
}
