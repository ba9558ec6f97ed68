package orbitrace

// ProgressFunc is called after each completed chunk with the number of
// chunks done so far and the total. It is called from worker goroutines,
// possibly concurrently, so done values may arrive out of order.
type ProgressFunc func(done, total int)

// Option configures a render.
//
// Example:
//
//	img, err := orbitrace.Render(cfg,
//	    orbitrace.WithWorkers(4),
//	    orbitrace.WithProgress(func(done, total int) {
//	        log.Printf("%d/%d", done, total)
//	    }))
type Option func(*options)

type options struct {
	workers  int
	progress ProgressFunc
}

func defaultOptions() options {
	return options{
		workers: 0, // GOMAXPROCS
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWorkers sets the number of worker goroutines.
// Zero or a negative value means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithProgress installs a per-chunk progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}
