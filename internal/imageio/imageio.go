// Package imageio writes rendered images to files, choosing the encoder
// from the file extension.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file extension has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")
)

// Format is an output image format.
type Format int

const (
	PNG Format = iota
	JPEG
	BMP
	TIFF
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

var formatNames = [...]string{
	PNG:  "png",
	JPEG: "jpeg",
	BMP:  "bmp",
	TIFF: "tiff",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// FormatOf returns the format selected by the extension of path.
// The comparison is case-insensitive.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %v: %w", f, err)
	}
	return nil
}

// Save writes img to path, choosing the encoder from the extension.
// The format is checked before the file is created.
func Save(path string, img image.Image) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(file, img, f); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("imageio: close file: %w", err)
	}
	return nil
}
