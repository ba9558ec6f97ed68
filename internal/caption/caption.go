// Package caption stamps a short parameter line onto a rendered image.
//
// Text is drawn with the Go Regular font from golang.org/x/image, so no
// font files are needed at run time.
package caption

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrTooSmall is returned when the image cannot hold a single line.
var ErrTooSmall = errors.New("caption: image too small")

// Options controls caption placement and look.
type Options struct {
	// Size is the font size in pixels. Zero selects a size relative to
	// the image height.
	Size float64

	// Margin is the distance from the bottom-left corner in pixels.
	// Zero selects half the font size.
	Margin int

	// Color is the text color. The zero value selects opaque light gray.
	Color color.Color
}

var (
	parseOnce sync.Once
	parsed    *opentype.Font
	parseErr  error
)

func goRegular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// minAutoSize is the smallest font size an automatic size shrinks to.
const minAutoSize = 6

// Stamp draws text in the bottom-left corner of dst. Lines are separated
// by '\n' and drawn bottom-aligned. Empty text is a no-op.
//
// With an automatic size the font shrinks until the widest line fits the
// image width, down to a floor of 6 pixels.
func Stamp(dst draw.Image, text string, opts Options) error {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")

	b := dst.Bounds()
	var src image.Image = image.NewUniform(color.RGBA{R: 200, G: 200, B: 200, A: 255})
	if opts.Color != nil {
		src = image.NewUniform(opts.Color)
	}

	f, err := goRegular()
	if err != nil {
		return fmt.Errorf("caption: parse font: %w", err)
	}

	var face font.Face
	size := opts.Size
	if size > 0 {
		face, err = newFace(f, size)
	} else {
		face, size, err = fit(f, lines, b.Dx(), max(float64(b.Dy())/60, 8), opts.Margin)
	}
	if err != nil {
		return err
	}
	defer func() { _ = face.Close() }()
	margin := marginFor(opts.Margin, size)

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	if lineHeight*len(lines)+2*margin > b.Dy() {
		return fmt.Errorf("%w: %d lines of %dpx in %dpx", ErrTooSmall, len(lines), lineHeight, b.Dy())
	}

	d := &font.Drawer{Dst: dst, Src: src, Face: face}
	baseline := b.Max.Y - margin - metrics.Descent.Ceil()
	for i := len(lines) - 1; i >= 0; i-- {
		d.Dot = fixed.P(b.Min.X+margin, baseline)
		d.DrawString(lines[i])
		baseline -= lineHeight
	}
	return nil
}

// fit returns a face no larger than size whose widest line fits width
// pixels between the margins. Past minAutoSize the text is left to clip.
func fit(f *opentype.Font, lines []string, width int, size float64, margin int) (font.Face, float64, error) {
	face, err := newFace(f, size)
	if err != nil {
		return nil, 0, err
	}
	for size > minAutoSize {
		avail := width - 2*marginFor(margin, size)
		w := widest(face, lines)
		if w <= avail {
			break
		}
		_ = face.Close()
		size = max(min(size*float64(avail)/float64(w), size-0.5), minAutoSize)
		if face, err = newFace(f, size); err != nil {
			return nil, 0, err
		}
	}
	return face, size, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("caption: create face: %w", err)
	}
	return face, nil
}

// marginFor resolves a zero margin to half the font size.
func marginFor(margin int, size float64) int {
	if margin > 0 {
		return margin
	}
	return int(size / 2)
}

// widest returns the advance width of the widest line in pixels.
func widest(face font.Face, lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, font.MeasureString(face, l).Ceil())
	}
	return w
}
