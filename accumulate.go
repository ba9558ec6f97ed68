package orbitrace

import (
	"sync/atomic"

	"github.com/gogpu/orbitrace/internal/parallel"
)

// Accumulate renders coords in chunks of cfg.ChunkLen on a worker pool and
// folds the chunk canvases into one Size×Size canvas.
//
// The result does not depend on the worker count, the chunk length or the
// order in which chunks finish. An empty coords gives an empty canvas.
func Accumulate(cfg Config, coords []complex128, opts ...Option) *Canvas {
	o := applyOptions(opts)
	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	return accumulate(pool, cfg, coords, o.progress)
}

func accumulate(pool *parallel.WorkerPool, cfg Config, coords []complex128, progress ProgressFunc) *Canvas {
	acc := NewCanvas(cfg.Size, cfg.Size)
	chunks := splitChunks(coords, cfg.ChunkLen)
	total := len(chunks)
	if total == 0 {
		return acc
	}

	// At most one partial per worker. A job owns a partial between
	// receiving it and sending it back.
	n := min(pool.Workers(), total)
	partials := make(chan *Canvas, n)
	for range n {
		partials <- NewCanvas(cfg.Size, cfg.Size)
	}

	scratch := newCanvasPool(cfg.Size, cfg.Size)
	var done atomic.Int64

	pool.ForEach(total, func(i int) {
		chunk := scratch.get()
		renderChunkInto(chunk, cfg, chunks[i])

		p := <-partials
		p.Fold(chunk)
		partials <- p
		scratch.put(chunk)

		if progress != nil {
			progress(int(done.Add(1)), total)
		}
	})

	close(partials)
	for p := range partials {
		acc.Fold(p)
	}
	Logger().Debug("chunks folded",
		"chunks", total,
		"partials", n,
		"coords", len(coords))
	return acc
}

// splitChunks partitions coords into consecutive slices of size n; the
// last may be shorter. A non-positive n yields a single chunk.
func splitChunks(coords []complex128, n int) [][]complex128 {
	if len(coords) == 0 {
		return nil
	}
	if n <= 0 {
		n = len(coords)
	}
	chunks := make([][]complex128, 0, chunkCount(len(coords), n))
	for start := 0; start < len(coords); start += n {
		end := min(start+n, len(coords))
		chunks = append(chunks, coords[start:end:end])
	}
	return chunks
}

// chunkCount returns ceil(length/n).
func chunkCount(length, n int) int {
	if length <= 0 {
		return 0
	}
	if n <= 0 {
		return 1
	}
	return (length + n - 1) / n
}
