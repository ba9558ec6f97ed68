// Package orbitrace renders iterated-orbit traces of the map z -> z^p + c.
//
// # Overview
//
// Every point c of a square grid in the complex plane is iterated from
// z = 0. The resulting orbit is drawn as a chain of anti-aliased line
// segments into a 16-bit canvas, so that regions many orbits pass through
// accumulate brightness. With p = 2 and only escaping orbits kept this is
// the image known as the Buddhabrot.
//
// # Quick Start
//
//	cfg := orbitrace.DefaultConfig()
//	cfg.Size = 1000
//	cfg.Zoom = 450
//
//	img, err := orbitrace.Render(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Pipeline
//
// Render runs four stages:
//   - Grid: coordinates -Bounds + k·Delta on both axes, real part outer.
//   - Accumulate: the grid is split into chunks of ChunkLen coordinates.
//     Each chunk is traced into its own canvas on a worker pool and the
//     canvases are folded together.
//   - Overlay (optional): a classic escape-time mask, dark red where
//     |z|² exceeds 4 within Limit steps and black elsewhere.
//   - Composite: white with the canvas alpha over an opaque background,
//     then the mask on top.
//
// # Determinism
//
// Canvas alpha is stored as a saturating optical depth code, so folding
// canvases is exactly associative and commutative. The image does not
// depend on the number of workers, the chunk size or scheduling order.
//
// # Coordinate System
//
// Image coordinates follow the usual raster convention:
//   - Origin (0,0) at top-left
//   - X increases right with the real part
//   - Y increases down with the imaginary part
//
// The view is centered on -(ReOff + i·ImOff) and Zoom is in pixels per
// unit.
package orbitrace
