package orbitrace

import (
	"image"
	"time"

	"github.com/gogpu/orbitrace/internal/orbit"
	"github.com/gogpu/orbitrace/internal/parallel"
)

// Grid returns the coordinates traced for cfg: -Bounds + k·Delta on both
// axes, real part outer.
func Grid(cfg Config) []complex128 {
	return orbit.Grid(cfg.Bounds, cfg.Delta)
}

// Render validates cfg and runs the whole pipeline: grid, accumulation,
// the optional escape-time overlay and compositing over DefaultBackground.
//
// The returned error wraps one of the Err* sentinels when cfg is invalid.
func Render(cfg Config, opts ...Option) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	log := Logger()
	start := time.Now()
	log.Info("render started",
		"size", cfg.Size,
		"mode", cfg.Mode,
		"pow", cfg.Pow,
		"limit", cfg.Limit)

	coords := Grid(cfg)
	log.Debug("grid built",
		"coords", len(coords),
		"chunks", chunkCount(len(coords), cfg.ChunkLen),
		"workers", pool.Workers())

	acc := accumulate(pool, cfg, coords, o.progress)
	log.Debug("accumulation finished", "elapsed", time.Since(start))

	var mask *image.RGBA
	if cfg.OverlayMandel {
		log.Info("overlay started")
		mask = overlay(pool, cfg)
	}

	img := Composite(acc, mask, DefaultBackground)
	log.Info("render finished", "elapsed", time.Since(start))
	return img, nil
}
