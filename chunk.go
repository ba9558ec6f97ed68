package orbitrace

import (
	"math"

	"github.com/gogpu/orbitrace/internal/blend"
	"github.com/gogpu/orbitrace/internal/raster"
)

// RenderChunk traces every coordinate of coords and draws the kept orbits
// into a new Size×Size canvas.
//
// Each orbit becomes a polyline through its image positions, drawn with
// full luminance and alpha cfg.Opacity. Segments leaving the canvas are
// clipped, however far their endpoints lie.
func RenderChunk(cfg Config, coords []complex128) *Canvas {
	dst := NewCanvas(cfg.Size, cfg.Size)
	renderChunkInto(dst, cfg, coords)
	return dst
}

// renderChunkInto draws into dst, which must be Size×Size. One trace
// buffer is reused for the whole chunk.
func renderChunkInto(dst *Canvas, cfg Config, coords []complex128) {
	m := cfg.Map()
	stroke := blend.Stroke{Y: math.MaxUint16, Alpha: cfg.Opacity}

	var buf []complex128
	for _, c := range coords {
		points, escaped := m.Trace(c, buf)
		buf = points
		if !cfg.Mode.Keep(escaped) {
			continue
		}

		x0, y0 := cfg.imagePos(points[0])
		for _, p := range points[1:] {
			x1, y1 := cfg.imagePos(p)
			drawSegment(dst, x0, y0, x1, y1, stroke)
			x0, y0 = x1, y1
		}
	}
}

// drawSegment truncates the endpoints to pixels and draws the segment.
// A finite segment reaching past the int32 range is first clipped to it
// along its own line, so the visible part keeps its direction. NaN and
// infinite positions saturate like ToImage.
func drawSegment(dst *Canvas, x0, y0, x1, y1 float64, s blend.Stroke) {
	const lim = float64(raster.MaxCoord)
	// m is NaN or +Inf when a position is not finite.
	if m := max(math.Abs(x0), math.Abs(y0), math.Abs(x1), math.Abs(y1)); m > lim && !math.IsInf(m, 1) {
		var ok bool
		x0, y0, x1, y1, ok = raster.ClipSegment(x0, y0, x1, y1, -lim, lim)
		if !ok {
			return
		}
	}
	raster.DrawLineAA[blend.Stroke, blend.LumaA](dst,
		raster.ClampCoord(x0), raster.ClampCoord(y0),
		raster.ClampCoord(x1), raster.ClampCoord(y1),
		s, blend.BlendStroke)
}
