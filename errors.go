package orbitrace

import "errors"

// Sentinel errors returned by Config.Validate and ParseDrawMode.
var (
	// ErrInvalidSize is returned when the image size is not positive.
	ErrInvalidSize = errors.New("orbitrace: image size must be positive")

	// ErrInvalidBounds is returned when the grid bound is not a positive finite number.
	ErrInvalidBounds = errors.New("orbitrace: bounds must be positive and finite")

	// ErrInvalidDelta is returned when the grid step is not a positive finite number.
	ErrInvalidDelta = errors.New("orbitrace: delta must be positive and finite")

	// ErrInvalidLimit is returned when the iteration limit is negative.
	ErrInvalidLimit = errors.New("orbitrace: limit must not be negative")

	// ErrInvalidZoom is returned when the zoom is not a positive finite number.
	ErrInvalidZoom = errors.New("orbitrace: zoom must be positive and finite")

	// ErrInvalidChunkLen is returned when the chunk length is not positive.
	ErrInvalidChunkLen = errors.New("orbitrace: chunk length must be positive")

	// ErrNotFinite is returned when an offset or the exponent is NaN or infinite.
	ErrNotFinite = errors.New("orbitrace: value must be finite")

	// ErrInvalidMode is returned for an unknown draw mode name.
	ErrInvalidMode = errors.New("orbitrace: unknown draw mode")
)
