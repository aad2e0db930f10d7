// Package blend implements the canvas compositing operators: the Porter-Duff
// operators and the W3C separable and non-separable blend modes.
//
// Colors are premultiplied float32 components in [0, 1].
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "github.com/chewxy/math32"

// Color is a premultiplied RGBA color.
type Color struct {
	R, G, B, A float32
}

// Op is a compositing operator.
type Op uint8

const (
	// Porter-Duff operators
	SourceOver      Op = iota // S + D*(1-Sa) [default]
	SourceIn                  // S*Da
	SourceOut                 // S*(1-Da)
	SourceAtop                // S*Da + D*(1-Sa)
	DestinationOver           // S*(1-Da) + D
	DestinationIn             // D*Sa
	DestinationOut            // D*(1-Sa)
	DestinationAtop           // S*(1-Da) + D*Sa
	Lighter                   // S + D, clamped
	Copy                      // S
	Xor                       // S*(1-Da) + D*(1-Sa)
	Clear                     // 0

	// Blend modes, composited with source-over
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	ColorMode
	Luminosity
)

// Unbounded reports whether op changes destination pixels that the source
// does not cover. Such operators treat uncovered pixels as a transparent
// source.
func (op Op) Unbounded() bool {
	switch op {
	case SourceIn, SourceOut, DestinationIn, DestinationAtop, Copy, Clear:
		return true
	}
	return false
}

// Composite combines source s with destination d.
func Composite(op Op, s, d Color) Color {
	if op >= Multiply {
		return blendOver(op, s, d)
	}

	var fa, fb float32
	switch op {
	case SourceOver:
		fa, fb = 1, 1-s.A
	case SourceIn:
		fa, fb = d.A, 0
	case SourceOut:
		fa, fb = 1-d.A, 0
	case SourceAtop:
		fa, fb = d.A, 1-s.A
	case DestinationOver:
		fa, fb = 1-d.A, 1
	case DestinationIn:
		fa, fb = 0, s.A
	case DestinationOut:
		fa, fb = 0, 1-s.A
	case DestinationAtop:
		fa, fb = 1-d.A, s.A
	case Lighter:
		fa, fb = 1, 1
	case Copy:
		fa, fb = 1, 0
	case Xor:
		fa, fb = 1-d.A, 1-s.A
	case Clear:
		return Color{}
	}

	return Color{
		R: clamp01(s.R*fa + d.R*fb),
		G: clamp01(s.G*fa + d.G*fb),
		B: clamp01(s.B*fa + d.B*fb),
		A: clamp01(s.A*fa + d.A*fb),
	}
}

// Lerp interpolates between a and b; t is clamped to [0, 1].
func Lerp(a, b Color, t float32) Color {
	t = clamp01(t)
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// blendOver applies a blend mode with source-over compositing:
//
//	Co = cs*(1-ab) + cb*(1-as) + as*ab*B(Cb, Cs)
//	ao = as + ab*(1-as)
func blendOver(op Op, s, d Color) Color {
	if s.A == 0 {
		return d
	}
	if d.A == 0 {
		return s
	}

	// unpremultiplied
	cs := [3]float32{s.R / s.A, s.G / s.A, s.B / s.A}
	cb := [3]float32{d.R / d.A, d.G / d.A, d.B / d.A}

	var b [3]float32
	switch op {
	case Hue:
		b = setLum(setSat(cs, sat(cb)), lum(cb))
	case Saturation:
		b = setLum(setSat(cb, sat(cs)), lum(cb))
	case ColorMode:
		b = setLum(cs, lum(cb))
	case Luminosity:
		b = setLum(cb, lum(cs))
	default:
		f := separable(op)
		for i := range b {
			b[i] = f(cb[i], cs[i])
		}
	}

	both := s.A * d.A
	ps := [3]float32{s.R, s.G, s.B}
	pd := [3]float32{d.R, d.G, d.B}
	var out [3]float32
	for i := range out {
		out[i] = clamp01(ps[i]*(1-d.A) + pd[i]*(1-s.A) + both*b[i])
	}
	return Color{R: out[0], G: out[1], B: out[2], A: clamp01(s.A + d.A*(1-s.A))}
}

// separable returns the per-channel blend function B(cb, cs).
func separable(op Op) func(cb, cs float32) float32 {
	switch op {
	case Multiply:
		return func(cb, cs float32) float32 { return cb * cs }
	case Screen:
		return screen
	case Overlay:
		return func(cb, cs float32) float32 { return hardLight(cs, cb) }
	case Darken:
		return math32.Min
	case Lighten:
		return math32.Max
	case ColorDodge:
		return func(cb, cs float32) float32 {
			switch {
			case cb == 0:
				return 0
			case cs >= 1:
				return 1
			}
			return math32.Min(1, cb/(1-cs))
		}
	case ColorBurn:
		return func(cb, cs float32) float32 {
			switch {
			case cb >= 1:
				return 1
			case cs == 0:
				return 0
			}
			return 1 - math32.Min(1, (1-cb)/cs)
		}
	case HardLight:
		return hardLight
	case SoftLight:
		return softLight
	case Difference:
		return func(cb, cs float32) float32 { return math32.Abs(cb - cs) }
	case Exclusion:
		return func(cb, cs float32) float32 { return cb + cs - 2*cb*cs }
	}
	return func(_, cs float32) float32 { return cs } // normal
}

func screen(cb, cs float32) float32 {
	return cb + cs - cb*cs
}

func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	return screen(cb, 2*cs-1)
}

func softLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float32
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math32.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

// Non-separable helpers, W3C Compositing Level 1 section 9.

func lum(c [3]float32) float32 {
	return 0.30*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c [3]float32) float32 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

func clipColor(c [3]float32) [3]float32 {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])
	for i := range c {
		if n < 0 {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
		if x > 1 {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float32, l float32) [3]float32 {
	d := l - lum(c)
	return clipColor([3]float32{c[0] + d, c[1] + d, c[2] + d})
}

func setSat(c [3]float32, s float32) [3]float32 {
	// indices of min, mid and max components
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}

	var out [3]float32
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out
}

func clamp01(x float32) float32 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
