package orbitrace

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/orbitrace/internal/blend"
)

// DefaultBackground is the background used by Render.
var DefaultBackground = color.RGBA{A: 255}

// Composite turns an accumulated canvas into an 8-bit image.
//
// Every pixel starts as bg, which is treated as opaque. White with the
// top 8 bits of the canvas alpha is composited over it with straight
// alpha. If mask is not nil it is then drawn over the result with the
// Porter-Duff over operator; an opaque mask replaces the trace layer.
func Composite(acc *Canvas, mask *image.RGBA, bg color.RGBA) *image.RGBA {
	w, h := acc.Width(), acc.Height()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	base := color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}
	for y := range h {
		for x := range w {
			a := uint8(acc.Alpha(x, y) >> 8)
			c := blend.OverNRGBA(color.NRGBA{R: 255, G: 255, B: 255, A: a}, base)
			// c is opaque, so straight and premultiplied agree.
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}

	if mask != nil {
		draw.Draw(out, out.Bounds(), mask, mask.Bounds().Min, draw.Over)
	}
	return out
}
