package orbitrace

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/orbitrace/internal/orbit"
	"github.com/gogpu/orbitrace/internal/raster"
)

// DrawMode selects which orbits are drawn.
type DrawMode int

const (
	// All draws every orbit.
	All DrawMode = iota

	// Escaped draws only orbits that leave the bound (the Buddhabrot).
	Escaped

	// Trapped draws only orbits that stay inside the bound for Limit steps.
	Trapped
)

var drawModeNames = [...]string{
	All:     "all",
	Escaped: "escaped",
	Trapped: "trapped",
}

// String returns the lower-case name of the mode.
func (m DrawMode) String() string {
	if m < 0 || int(m) >= len(drawModeNames) {
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
	return drawModeNames[m]
}

// Keep reports whether an orbit with the given escape flag is drawn.
func (m DrawMode) Keep(escaped bool) bool {
	switch m {
	case Escaped:
		return escaped
	case Trapped:
		return !escaped
	default:
		return true
	}
}

// Set parses s into m. It makes *DrawMode a flag.Value.
func (m *DrawMode) Set(s string) error {
	mode, err := ParseDrawMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseDrawMode parses a mode name case-insensitively.
func ParseDrawMode(s string) (DrawMode, error) {
	for m, name := range drawModeNames {
		if strings.EqualFold(s, name) {
			return DrawMode(m), nil
		}
	}
	return All, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Config holds the render parameters.
type Config struct {
	// Size is the width and height of the output image in pixels.
	Size int

	// Bounds is the half-extent of the coordinate grid and the
	// per-component escape threshold of the orbit traces.
	Bounds float64

	// Delta is the grid step on both axes.
	Delta float64

	// Limit is the maximum number of map applications per orbit.
	Limit int

	// Zoom is the number of pixels per unit of the complex plane.
	Zoom float64

	// ReOff and ImOff shift the view; the image center shows -(ReOff + i·ImOff).
	ReOff float64
	ImOff float64

	// ChunkLen is the number of coordinates traced per job.
	ChunkLen int

	// Opacity is the linear alpha of a single stroke.
	Opacity uint16

	// Mode selects which orbits are drawn.
	Mode DrawMode

	// OverlayMandel adds the escape-time mask on top of the traces.
	OverlayMandel bool

	// Pow is the exponent p of z -> z^p + c.
	Pow float64
}

// DefaultConfig returns the default parameters.
func DefaultConfig() Config {
	return Config{
		Size:     2000,
		Bounds:   2.0,
		Delta:    0.01,
		Limit:    100,
		Zoom:     900,
		ReOff:    0.4,
		ImOff:    0.0,
		ChunkLen: 10000,
		Opacity:  64,
		Mode:     All,
		Pow:      2.0,
	}
}

// Validate returns the first parameter violation, wrapping one of the
// sentinel errors, or nil.
func (c Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("size %d: %w", c.Size, ErrInvalidSize)
	case !positiveFinite(c.Bounds):
		return fmt.Errorf("bounds %v: %w", c.Bounds, ErrInvalidBounds)
	case !positiveFinite(c.Delta):
		return fmt.Errorf("delta %v: %w", c.Delta, ErrInvalidDelta)
	case c.Limit < 0:
		return fmt.Errorf("limit %d: %w", c.Limit, ErrInvalidLimit)
	case !positiveFinite(c.Zoom):
		return fmt.Errorf("zoom %v: %w", c.Zoom, ErrInvalidZoom)
	case c.ChunkLen <= 0:
		return fmt.Errorf("chunk length %d: %w", c.ChunkLen, ErrInvalidChunkLen)
	case !finite(c.ReOff):
		return fmt.Errorf("real offset %v: %w", c.ReOff, ErrNotFinite)
	case !finite(c.ImOff):
		return fmt.Errorf("imaginary offset %v: %w", c.ImOff, ErrNotFinite)
	case !finite(c.Pow):
		return fmt.Errorf("power %v: %w", c.Pow, ErrNotFinite)
	}
	return nil
}

// Map returns the orbit map described by c.
func (c Config) Map() orbit.Map {
	return orbit.Map{Pow: c.Pow, Bound: c.Bounds, Limit: c.Limit}
}

// ToImage maps a complex value to pixel coordinates:
//
//	x = Size/2 + (re + ReOff)·Zoom
//	y = Size/2 + (im + ImOff)·Zoom
//
// The result is truncated toward zero and saturated to the int32 range;
// NaN maps to 0.
func (c Config) ToImage(v complex128) (x, y int) {
	fx, fy := c.imagePos(v)
	return raster.ClampCoord(fx), raster.ClampCoord(fy)
}

// imagePos is ToImage before truncation.
func (c Config) imagePos(v complex128) (x, y float64) {
	half := float64(c.Size) / 2
	return half + (real(v)+c.ReOff)*c.Zoom, half + (imag(v)+c.ImOff)*c.Zoom
}

// ToComplex maps pixel coordinates back to the complex plane. It is the
// inverse of ToImage up to truncation.
func (c Config) ToComplex(x, y int) complex128 {
	half := float64(c.Size) / 2
	re := (float64(x)-half)/c.Zoom - c.ReOff
	im := (float64(y)-half)/c.Zoom - c.ImOff
	return complex(re, im)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
