package blend

import (
	"testing"

	"github.com/chewxy/math32"
)

const epsilon = 1e-5

func near(a, b Color) bool {
	return math32.Abs(a.R-b.R) < epsilon && math32.Abs(a.G-b.G) < epsilon &&
		math32.Abs(a.B-b.B) < epsilon && math32.Abs(a.A-b.A) < epsilon
}

var (
	red      = Color{1, 0, 0, 1}
	blue     = Color{0, 0, 1, 1}
	halfRed  = Color{0.5, 0, 0, 0.5}
	halfBlue = Color{0, 0, 0.5, 0.5}
	none     = Color{}
)

func TestCompositePorterDuff(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		s, d Color
		want Color
	}{
		{"source-over opaque", SourceOver, red, blue, red},
		{"source-over half", SourceOver, halfRed, blue, Color{0.5, 0, 0.5, 1}},
		{"source-in", SourceIn, red, halfBlue, Color{0.5, 0, 0, 0.5}},
		{"source-in empty dst", SourceIn, red, none, none},
		{"source-out", SourceOut, red, halfBlue, Color{0.5, 0, 0, 0.5}},
		{"source-atop", SourceAtop, halfRed, blue, Color{0.5, 0, 0.5, 1}},
		{"destination-over", DestinationOver, red, halfBlue, Color{0.5, 0, 0.5, 1}},
		{"destination-in", DestinationIn, halfRed, blue, Color{0, 0, 0.5, 0.5}},
		{"destination-out", DestinationOut, halfRed, blue, Color{0, 0, 0.5, 0.5}},
		{"destination-atop", DestinationAtop, red, halfBlue, Color{0.5, 0, 0.5, 1}},
		{"lighter clamps", Lighter, red, Color{1, 1, 0, 1}, Color{1, 1, 0, 1}},
		{"copy", Copy, halfRed, blue, halfRed},
		{"xor", Xor, halfRed, halfBlue, Color{0.25, 0, 0.25, 0.5}},
		{"clear", Clear, red, blue, none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Composite(tt.op, tt.s, tt.d); !near(got, tt.want) {
				t.Errorf("Composite() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompositeBlendModes(t *testing.T) {
	gray := Color{0.5, 0.5, 0.5, 1}
	white := Color{1, 1, 1, 1}
	black := Color{0, 0, 0, 1}

	tests := []struct {
		name string
		op   Op
		s, d Color
		want Color
	}{
		{"multiply", Multiply, gray, gray, Color{0.25, 0.25, 0.25, 1}},
		{"multiply by white", Multiply, white, red, red},
		{"screen", Screen, gray, gray, Color{0.75, 0.75, 0.75, 1}},
		{"darken", Darken, gray, red, Color{0.5, 0, 0, 1}},
		{"lighten", Lighten, gray, red, Color{1, 0.5, 0.5, 1}},
		{"difference", Difference, white, red, Color{0, 1, 1, 1}},
		{"exclusion", Exclusion, gray, gray, Color{0.5, 0.5, 0.5, 1}},
		{"overlay dark backdrop", Overlay, white, black, black},
		{"hard-light", HardLight, black, gray, black},
		{"color-dodge black source", ColorDodge, black, gray, gray},
		{"color-burn white source", ColorBurn, white, gray, gray},
		{"soft-light gray source", SoftLight, gray, gray, gray},
		{"color of gray", ColorMode, gray, red, Color{0.3, 0.3, 0.3, 1}},
		{"luminosity of white", Luminosity, white, red, white},
		{"saturation of gray", Saturation, gray, red, Color{0.3, 0.3, 0.3, 1}},
		{"transparent source", Multiply, none, red, red},
		{"transparent backdrop", Screen, halfRed, none, halfRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Composite(tt.op, tt.s, tt.d); !near(got, tt.want) {
				t.Errorf("Composite() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBlendModeWithPartialAlpha(t *testing.T) {
	// Co = cs*(1-ab) + cb*(1-as) + as*ab*B, with B = multiply.
	s := Color{0.5, 0.5, 0.5, 0.5} // white at half alpha
	d := Color{0.5, 0, 0, 0.5}     // red at half alpha
	got := Composite(Multiply, s, d)
	want := Color{
		R: 0.5*0.5 + 0.5*0.5 + 0.25*1,
		G: 0.5 * 0.5,
		B: 0.5 * 0.5,
		A: 0.75,
	}
	if !near(got, want) {
		t.Errorf("Composite() = %+v, want %+v", got, want)
	}
}

func TestUnbounded(t *testing.T) {
	unbounded := map[Op]bool{
		SourceIn: true, SourceOut: true, DestinationIn: true,
		DestinationAtop: true, Copy: true, Clear: true,
	}
	for op := SourceOver; op <= Luminosity; op++ {
		if got := op.Unbounded(); got != unbounded[op] {
			t.Errorf("Op(%d).Unbounded() = %v, want %v", op, got, unbounded[op])
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		t    float32
		want Color
	}{
		{0, none},
		{0.5, halfRed},
		{1, red},
		{-1, none},
		{2, red},
	}
	for _, tt := range tests {
		if got := Lerp(none, red, tt.t); !near(got, tt.want) {
			t.Errorf("Lerp(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
}
