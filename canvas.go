package orbitrace

import (
	"fmt"
	"sync"

	"github.com/gogpu/orbitrace/internal/blend"
)

// Canvas is the accumulation buffer traces are drawn into.
//
// The zero pixel is fully transparent, so a new canvas is the identity of
// Fold. Canvas implements raster.Pixmap[blend.LumaA].
type Canvas struct {
	width  int
	height int
	pix    []blend.LumaA
}

// NewCanvas returns an empty canvas. Non-positive dimensions give an
// empty 0×0 canvas.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		return &Canvas{}
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]blend.LumaA, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Pixel returns the pixel at (x, y). Out-of-bounds reads return the
// transparent pixel.
func (c *Canvas) Pixel(x, y int) blend.LumaA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return blend.LumaA{}
	}
	return c.pix[y*c.width+x]
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (c *Canvas) SetPixel(x, y int, p blend.LumaA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pix[y*c.width+x] = p
}

// Alpha returns the linear 16-bit alpha at (x, y).
func (c *Canvas) Alpha(x, y int) uint16 {
	return c.Pixel(x, y).Alpha()
}

// Fold composites src over c in place, pixel by pixel.
//
// Fold is associative and commutative for canvases drawn by this package,
// so partial canvases may be combined in any order.
// It panics if the canvas sizes differ.
func (c *Canvas) Fold(src *Canvas) {
	if src.width != c.width || src.height != c.height {
		panic(fmt.Sprintf("orbitrace: fold of %dx%d canvas into %dx%d canvas",
			src.width, src.height, c.width, c.height))
	}
	for i, p := range src.pix {
		if p.Depth != 0 {
			c.pix[i] = blend.Over(p, c.pix[i])
		}
	}
}

// Reset clears the canvas to transparent.
func (c *Canvas) Reset() {
	clear(c.pix)
}

// Equal reports whether two canvases have the same size and pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.pix {
		if c.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// canvasPool recycles chunk canvases of one size.
// Canvases are zeroed on get, so callers always start from the identity.
type canvasPool struct {
	pool sync.Pool
}

func newCanvasPool(width, height int) *canvasPool {
	p := &canvasPool{}
	p.pool.New = func() any {
		return NewCanvas(width, height)
	}
	return p
}

func (p *canvasPool) get() *Canvas {
	c := p.pool.Get().(*Canvas)
	c.Reset()
	return c
}

func (p *canvasPool) put(c *Canvas) {
	if c != nil {
		p.pool.Put(c)
	}
}
