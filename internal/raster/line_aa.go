package raster

import "math"

// DrawLineAA draws an anti-aliased segment from (x0, y0) to (x1, y1)
// using Xiaolin Wu's algorithm.
//
// The segment is walked along its major axis. At every step the exact
// minor-axis position is split between the two nearest pixels, each
// receiving the complementary fraction as coverage. Both endpoints are
// included. A zero-length segment covers its single pixel fully.
//
// Pixels outside the pixmap are clipped. The walk itself is limited to the
// pixmap extent, so far-away endpoints cost no more than the visible part.
func DrawLineAA[C, P any](dst Pixmap[P], x0, y0, x1, y1 int, c C, blend BlendFunc[C, P]) {
	x0, y0 = clampPoint(x0, y0)
	x1, y1 = clampPoint(x1, y1)

	p := plotter[C, P]{
		dst:    dst,
		color:  c,
		blend:  blend,
		width:  dst.Width(),
		height: dst.Height(),
	}

	// Mostly vertical lines are walked along y with swapped axes.
	// Differences are taken in float64: they can exceed the int32 range.
	p.steep = math.Abs(float64(y1)-float64(y0)) > math.Abs(float64(x1)-float64(x0))
	if p.steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	var gradient float64
	if x1 > x0 {
		gradient = (float64(y1) - float64(y0)) / (float64(x1) - float64(x0))
	}

	majorMax, minorMax := p.width-1, p.height-1
	if p.steep {
		majorMax, minorMax = minorMax, majorMax
	}
	lo, hi := max(x0, 0), min(x1, majorMax)

	for x := lo; x <= hi; x++ {
		fy := float64(y0) + (float64(x)-float64(x0))*gradient
		if fy < -1 || fy >= float64(minorMax)+1 {
			continue
		}
		iy := math.Floor(fy)
		frac := fy - iy
		y := int(iy)

		p.plot(x, y, float32(1-frac))
		p.plot(x, y+1, float32(frac))
	}
}

// plotter maps walk coordinates back to pixmap coordinates and clips.
type plotter[C, P any] struct {
	dst    Pixmap[P]
	color  C
	blend  BlendFunc[C, P]
	width  int
	height int
	steep  bool
}

func (p *plotter[C, P]) plot(x, y int, coverage float32) {
	if coverage <= 0 {
		return
	}
	if p.steep {
		x, y = y, x
	}
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.dst.SetPixel(x, y, p.blend(p.color, p.dst.Pixel(x, y), coverage))
}

func clampPoint(x, y int) (int, int) {
	return clampInt(x), clampInt(y)
}

func clampInt(v int) int {
	return min(max(v, -MaxCoord), MaxCoord)
}
