package orbitrace

import (
	"image"
	"image/color"

	"github.com/gogpu/orbitrace/internal/parallel"
)

// Overlay mask colors.
var (
	// EscapedColor marks pixels whose point escapes within Limit steps.
	EscapedColor = color.RGBA{R: 128, G: 0, B: 0, A: 255}

	// TrappedColor marks pixels whose point does not escape.
	TrappedColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Overlay computes the classic escape-time mask for the view of cfg.
//
// Each pixel is mapped back with cfg.ToComplex and iterated from z = 0 for
// up to cfg.Limit steps; it escapes once |z|² > 4 regardless of Bounds.
// Every pixel of the result is either EscapedColor or TrappedColor.
func Overlay(cfg Config, opts ...Option) *image.RGBA {
	o := applyOptions(opts)
	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	return overlay(pool, cfg)
}

func overlay(pool *parallel.WorkerPool, cfg Config) *image.RGBA {
	size := max(cfg.Size, 0)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	m := cfg.Map()

	// Rows are disjoint, so jobs write without locking.
	pool.ForEach(size, func(y int) {
		for x := range size {
			c := TrappedColor
			if m.Escapes(cfg.ToComplex(x, y)) {
				c = EscapedColor
			}
			img.SetRGBA(x, y, c)
		}
	})
	return img
}
