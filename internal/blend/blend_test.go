package blend

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestAlphaOfEndpoints(t *testing.T) {
	if got := alphaOf(0); got != 0 {
		t.Errorf("alphaOf(0) = %d, want 0", got)
	}
	if got := alphaOf(MaxDepth); got != 65535 {
		t.Errorf("alphaOf(MaxDepth) = %d, want 65535", got)
	}
}

func TestAlphaOfMonotonic(t *testing.T) {
	prev := alphaOf(0)
	for d := uint64(1); d <= MaxDepth; d = d*5/4 + 1 {
		a := alphaOf(uint32(d))
		if a < prev {
			t.Fatalf("alphaOf(%d) = %d < previous %d", d, a, prev)
		}
		prev = a
	}
}

func TestDepthOf(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		want  uint32
	}{
		{"zero", 0, 0},
		{"negative", -0.5, 0},
		{"NaN", math.NaN(), 0},
		{"one", 1, MaxDepth},
		{"above one", 3, MaxDepth},
		{"tiny", 1e-12, 1},
		{"one unit", 1.0 / 65535, 4096},
		{"half", 0.5, uint32(math.Round(DepthScale * math.Ln2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DepthOf(tt.alpha); got != tt.want {
				t.Errorf("DepthOf(%v) = %d, want %d", tt.alpha, got, tt.want)
			}
		})
	}
}

func TestDepthRoundTrip(t *testing.T) {
	for a := 0; a <= 65535; a++ {
		if got := alphaOf(DepthOf(float64(a) / 65535)); int(got) != a {
			t.Fatalf("alphaOf(DepthOf(%d)) = %d", a, got)
		}
	}
}

func TestOverIdentity(t *testing.T) {
	p := LumaA{Y: 1234, Depth: 567}
	if got := Over(p, LumaA{}); got != p {
		t.Errorf("Over(p, 0) = %+v, want %+v", got, p)
	}
	if got := Over(LumaA{}, p); got != p {
		t.Errorf("Over(0, p) = %+v, want %+v", got, p)
	}
}

func TestOverMatchesFloat(t *testing.T) {
	src := LumaA{Y: 65535, Depth: DepthOf(0.25)}
	dst := LumaA{Y: 0, Depth: DepthOf(0.5)}
	got := Over(src, dst)

	as := float64(src.Alpha()) / 65535
	ad := float64(dst.Alpha()) / 65535
	wantA := as + ad*(1-as)
	if diff := math.Abs(float64(got.Alpha())/65535 - wantA); diff > 2.0/65535 {
		t.Errorf("alpha = %v, want %v", float64(got.Alpha())/65535, wantA)
	}
	wantY := 65535 * as / wantA
	if diff := math.Abs(float64(got.Y) - wantY); diff > 1 {
		t.Errorf("Y = %d, want %.1f", got.Y, wantY)
	}
}

func TestOverSaturates(t *testing.T) {
	a := LumaA{Y: 65535, Depth: MaxDepth - 10}
	got := Over(a, a)
	if got.Depth != MaxDepth {
		t.Errorf("Depth = %d, want %d", got.Depth, MaxDepth)
	}
}

func randomWhite(r *rand.Rand) LumaA {
	// Mix in transparent pixels to exercise the identity.
	if r.IntN(4) == 0 {
		return LumaA{}
	}
	return LumaA{Y: 65535, Depth: uint32(r.IntN(1 << 30))}
}

func TestOverAssociativeCommutative(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		a, b, c := randomWhite(r), randomWhite(r), randomWhite(r)
		if l, rr := Over(Over(a, b), c), Over(a, Over(b, c)); l != rr {
			t.Fatalf("(a over b) over c = %+v, a over (b over c) = %+v", l, rr)
		}
		if ab, ba := Over(a, b), Over(b, a); ab != ba {
			t.Fatalf("a over b = %+v, b over a = %+v", ab, ba)
		}
	}
}

func TestBlendStroke(t *testing.T) {
	s := Stroke{Y: 65535, Alpha: 64}

	if got := BlendStroke(s, LumaA{}, 0); got != (LumaA{}) {
		t.Errorf("zero coverage = %+v, want transparent", got)
	}

	got := BlendStroke(s, LumaA{}, 1)
	if got.Y != 65535 || got.Depth != DepthOf(64.0/65535) {
		t.Errorf("full coverage = %+v", got)
	}
	if got.Depth == 0 {
		t.Error("full coverage stroke left no alpha")
	}

	half := BlendStroke(s, LumaA{}, 0.5)
	if half.Depth >= got.Depth {
		t.Errorf("half coverage depth %d >= full coverage depth %d", half.Depth, got.Depth)
	}
}

func TestBlendStrokeAccumulates(t *testing.T) {
	s := Stroke{Y: 65535, Alpha: 64}
	var p LumaA
	for i := 0; i < 1000; i++ {
		p = BlendStroke(s, p, 1)
	}
	if want := 1000 * DepthOf(64.0/65535); p.Depth != want {
		t.Errorf("Depth = %d, want %d", p.Depth, want)
	}
	if p.Alpha() < 30000 {
		t.Errorf("Alpha = %d after 1000 strokes, want > 30000", p.Alpha())
	}
}

func TestBlendStrokeOpacityResolution(t *testing.T) {
	for opacity := uint16(1); opacity <= 16; opacity++ {
		got := BlendStroke(Stroke{Y: 65535, Alpha: opacity}, LumaA{}, 1)
		if got.Alpha() != opacity {
			t.Errorf("opacity %d: Alpha = %d, want %d", opacity, got.Alpha(), opacity)
		}
	}
}

func TestBlendStrokeMatchesStraightOver(t *testing.T) {
	tests := []struct {
		name     string
		opacity  uint16
		coverage float32
		n        int
	}{
		{"opacity 2", 2, 1, 1000},
		{"opacity 1", 1, 1, 5000},
		{"default opacity low coverage", 64, 1.0 / 32, 2000},
		{"opacity 3 partial coverage", 3, 0.3, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stroke{Y: 65535, Alpha: tt.opacity}
			a := float64(tt.opacity) / 65535 * float64(tt.coverage)

			var p LumaA
			var want float64
			for i := 0; i < tt.n; i++ {
				p = BlendStroke(s, p, tt.coverage)
				want = a + want*(1-a)
			}
			want *= 65535
			if math.Abs(float64(p.Alpha())-want) > 1 {
				t.Errorf("Alpha = %d after %d strokes, want %.1f", p.Alpha(), tt.n, want)
			}
		})
	}
}
