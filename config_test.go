package orbitrace

import (
	"errors"
	"flag"
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	want := Config{
		Size: 2000, Bounds: 2, Delta: 0.01, Limit: 100, Zoom: 900,
		ReOff: 0.4, ImOff: 0, ChunkLen: 10000, Opacity: 64, Mode: All, Pow: 2,
	}
	if cfg != want {
		t.Errorf("DefaultConfig() = %+v, want %+v", cfg, want)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero size", func(c *Config) { c.Size = 0 }, ErrInvalidSize},
		{"negative size", func(c *Config) { c.Size = -3 }, ErrInvalidSize},
		{"zero bounds", func(c *Config) { c.Bounds = 0 }, ErrInvalidBounds},
		{"NaN bounds", func(c *Config) { c.Bounds = math.NaN() }, ErrInvalidBounds},
		{"infinite bounds", func(c *Config) { c.Bounds = math.Inf(1) }, ErrInvalidBounds},
		{"zero delta", func(c *Config) { c.Delta = 0 }, ErrInvalidDelta},
		{"negative delta", func(c *Config) { c.Delta = -0.1 }, ErrInvalidDelta},
		{"negative limit", func(c *Config) { c.Limit = -1 }, ErrInvalidLimit},
		{"zero zoom", func(c *Config) { c.Zoom = 0 }, ErrInvalidZoom},
		{"zero chunk length", func(c *Config) { c.ChunkLen = 0 }, ErrInvalidChunkLen},
		{"NaN real offset", func(c *Config) { c.ReOff = math.NaN() }, ErrNotFinite},
		{"infinite imaginary offset", func(c *Config) { c.ImOff = math.Inf(-1) }, ErrNotFinite},
		{"NaN power", func(c *Config) { c.Pow = math.NaN() }, ErrNotFinite},
		{"zero limit", func(c *Config) { c.Limit = 0 }, nil},
		{"zero opacity", func(c *Config) { c.Opacity = 0 }, nil},
		{"fractional power", func(c *Config) { c.Pow = 2.5 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseDrawMode(t *testing.T) {
	tests := []struct {
		in      string
		want    DrawMode
		wantErr bool
	}{
		{"all", All, false},
		{"All", All, false},
		{"ESCAPED", Escaped, false},
		{"Escaped", Escaped, false},
		{"trapped", Trapped, false},
		{"TrApPeD", Trapped, false},
		{"", All, true},
		{"bounded", All, true},
	}

	for _, tt := range tests {
		got, err := ParseDrawMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDrawMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseDrawMode(%q) error = %v, want %v", tt.in, err, ErrInvalidMode)
		}
		if got != tt.want {
			t.Errorf("ParseDrawMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDrawModeFlag(t *testing.T) {
	var m DrawMode
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&m, "m", "draw mode")

	if err := fs.Parse([]string{"-m", "Trapped"}); err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if m != Trapped {
		t.Errorf("mode = %v, want %v", m, Trapped)
	}
	if got := m.String(); got != "trapped" {
		t.Errorf("String() = %q, want %q", got, "trapped")
	}
	if got := DrawMode(7).String(); got != "DrawMode(7)" {
		t.Errorf("String() = %q, want %q", got, "DrawMode(7)")
	}
}

func TestDrawModeKeep(t *testing.T) {
	tests := []struct {
		mode                DrawMode
		escaped, notEscaped bool
	}{
		{All, true, true},
		{Escaped, true, false},
		{Trapped, false, true},
	}
	for _, tt := range tests {
		if got := tt.mode.Keep(true); got != tt.escaped {
			t.Errorf("%v.Keep(true) = %v, want %v", tt.mode, got, tt.escaped)
		}
		if got := tt.mode.Keep(false); got != tt.notEscaped {
			t.Errorf("%v.Keep(false) = %v, want %v", tt.mode, got, tt.notEscaped)
		}
	}
}

func TestToImage(t *testing.T) {
	cfg := Config{Size: 10, Zoom: 1}
	tests := []struct {
		v    complex128
		x, y int
	}{
		{0, 5, 5},
		{complex(-2, -2), 3, 3},
		{complex(3, 3), 8, 8},
		{complex(0.99, -0.5), 5, 4},
		{complex(math.NaN(), 1), 0, 6},
		{complex(math.Inf(1), math.Inf(-1)), math.MaxInt32, -math.MaxInt32},
		{complex(1e5, 5e4), 100005, 50005},
	}
	for _, tt := range tests {
		x, y := cfg.ToImage(tt.v)
		if x != tt.x || y != tt.y {
			t.Errorf("ToImage(%v) = (%d, %d), want (%d, %d)", tt.v, x, y, tt.x, tt.y)
		}
	}
}

func TestToComplex(t *testing.T) {
	cfg := Config{Size: 10, Zoom: 1}
	if got := cfg.ToComplex(5, 5); got != 0 {
		t.Errorf("ToComplex(5, 5) = %v, want 0", got)
	}
	if got := cfg.ToComplex(8, 8); got != complex(3, 3) {
		t.Errorf("ToComplex(8, 8) = %v, want (3+3i)", got)
	}

	cfg.ReOff, cfg.ImOff, cfg.Zoom = 0.5, -1, 2
	if got, want := cfg.ToComplex(5, 5), complex(-0.5, 1); got != want {
		t.Errorf("ToComplex(5, 5) = %v, want %v", got, want)
	}
}

func TestToImageRoundTrip(t *testing.T) {
	cfgs := []Config{
		{Size: 10, Zoom: 1},
		{Size: 2000, Zoom: 900, ReOff: 0.4},
		{Size: 333, Zoom: 123.4, ReOff: -0.7, ImOff: 0.25},
	}
	for _, cfg := range cfgs {
		for y := 0; y < cfg.Size; y += 7 {
			for x := 0; x < cfg.Size; x += 7 {
				gx, gy := cfg.ToImage(cfg.ToComplex(x, y))
				// Truncation may lose one pixel to rounding below the integer.
				if gx > x || gx < x-1 || gy > y || gy < y-1 {
					t.Fatalf("size %d: ToImage(ToComplex(%d, %d)) = (%d, %d)", cfg.Size, x, y, gx, gy)
				}
			}
		}
	}
}
