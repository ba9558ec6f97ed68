// Command orbitrace renders an orbit trace image to a file.
//
// Usage:
//
//	orbitrace [flags] [image.png]
//
// The output format follows the file extension: .png, .jpg, .jpeg, .bmp,
// .tif or .tiff.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/orbitrace"
	"github.com/gogpu/orbitrace/internal/caption"
	"github.com/gogpu/orbitrace/internal/imageio"
	"github.com/gogpu/orbitrace/internal/progress"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("orbitrace: %v", err)
	}
}

// options holds the command-line settings that are not render parameters.
type options struct {
	output       string
	verbose      bool
	workers      int
	label        bool
	progressAddr string
}

func parseFlags(args []string, stderr io.Writer) (orbitrace.Config, options, error) {
	cfg := orbitrace.DefaultConfig()
	var opts options

	fs := flag.NewFlagSet("orbitrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: orbitrace [flags] [image.png]\n")
		fs.PrintDefaults()
	}

	fs.IntVar(&cfg.Size, "s", cfg.Size, "image width and height in pixels")
	fs.Float64Var(&cfg.Bounds, "b", cfg.Bounds, "grid half-extent and escape bound")
	fs.Float64Var(&cfg.Delta, "d", cfg.Delta, "grid step")
	fs.IntVar(&cfg.Limit, "l", cfg.Limit, "iteration limit")
	fs.Float64Var(&cfg.Zoom, "z", cfg.Zoom, "pixels per unit")
	fs.Float64Var(&cfg.ReOff, "r", cfg.ReOff, "real offset")
	fs.Float64Var(&cfg.ImOff, "i", cfg.ImOff, "imaginary offset")
	fs.IntVar(&cfg.ChunkLen, "chunk_len", cfg.ChunkLen, "coordinates per job")
	opacity := fs.Uint("o", uint(cfg.Opacity), "stroke opacity (0-65535)")
	fs.Var(&cfg.Mode, "m", "orbits to draw: all, escaped or trapped")
	fs.BoolVar(&cfg.OverlayMandel, "mb", cfg.OverlayMandel, "overlay the escape-time mask")
	fs.Float64Var(&cfg.Pow, "p", cfg.Pow, "exponent of z^p + c")

	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.IntVar(&opts.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	fs.BoolVar(&opts.label, "label", false, "stamp the parameters onto the image")
	fs.StringVar(&opts.progressAddr, "progress-addr", "", "serve live progress over websocket at `addr`/progress")

	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}
	if *opacity > math.MaxUint16 {
		return cfg, opts, fmt.Errorf("opacity %d out of range 0-65535", *opacity)
	}
	cfg.Opacity = uint16(*opacity)

	switch fs.NArg() {
	case 0:
		opts.output = "image.png"
	case 1:
		opts.output = fs.Arg(0)
	default:
		return cfg, opts, fmt.Errorf("expected at most one output file, got %d", fs.NArg())
	}
	return cfg, opts, nil
}

func run(args []string, stderr io.Writer) error {
	cfg, opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Reject an unknown extension before spending time on the render.
	if _, err := imageio.FormatOf(opts.output); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	orbitrace.SetLogger(logger)
	defer orbitrace.SetLogger(nil)

	report := newProgressLogger(logger, 5)
	if opts.progressAddr != "" {
		hub := progress.NewHub(logger)
		srv := progress.NewServer(opts.progressAddr, hub)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("progress server stopped", "addr", opts.progressAddr, "err", err)
			}
		}()
		logger.Info("serving progress", "url", "ws://"+opts.progressAddr+"/progress")
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()

		logOnly := report
		report = func(done, total int) {
			logOnly(done, total)
			hub.Report(done, total)
		}
	}

	img, err := orbitrace.Render(cfg,
		orbitrace.WithWorkers(opts.workers),
		orbitrace.WithProgress(report))
	if err != nil {
		return err
	}

	if opts.label {
		if err := caption.Stamp(img, label(cfg), caption.Options{}); err != nil {
			logger.Warn("caption skipped", "err", err)
		}
	}

	if err := imageio.Save(opts.output, img); err != nil {
		return err
	}
	logger.Info("image saved", "path", opts.output, "size", cfg.Size)
	return nil
}

// label formats the render parameters for the caption.
func label(cfg orbitrace.Config) string {
	return fmt.Sprintf("p=%g  limit=%d  mode=%v  delta=%g  bounds=%g  zoom=%g  offset=(%g, %g)",
		cfg.Pow, cfg.Limit, cfg.Mode, cfg.Delta, cfg.Bounds, cfg.Zoom, cfg.ReOff, cfg.ImOff)
}

// newProgressLogger returns a progress callback that logs whenever another
// step percent of the chunks is done. Numbers are grouped for readability.
func newProgressLogger(logger *slog.Logger, step int) orbitrace.ProgressFunc {
	p := message.NewPrinter(language.English)
	var logged atomic.Int64

	return func(done, total int) {
		if total <= 0 {
			return
		}
		pct := done * 100 / total
		bucket := int64(pct / step * step)
		for {
			prev := logged.Load()
			if bucket <= prev {
				return
			}
			if logged.CompareAndSwap(prev, bucket) {
				break
			}
		}
		logger.Info("progress",
			"chunks", p.Sprintf("%d/%d", done, total),
			"percent", p.Sprintf("%d%%", pct))
	}
}
