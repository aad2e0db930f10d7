package canvas

import (
	"image"
	"image/color"

	"github.com/gogpu/canvas/internal/blend"
)

// Pixmap is a premultiplied RGBA pixel buffer owned by a renderer.
type Pixmap struct {
	img *image.RGBA
}

// NewPixmap creates a transparent pixmap. Negative dimensions are treated
// as zero.
func NewPixmap(size Size) *Pixmap {
	return &Pixmap{img: image.NewRGBA(size.Bounds())}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.img.Rect.Dx()
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.img.Rect.Dy()
}

// ToImage returns a copy of the pixels.
func (p *Pixmap) ToImage() *image.RGBA {
	out := image.NewRGBA(p.img.Rect)
	copy(out.Pix, p.img.Pix)
	return out
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return p.img.Rect
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

// paint composites a solid color through a coverage mask. src is straight
// alpha; alpha scales it (global alpha). Pixels outside cov have zero
// coverage, which only matters for unbounded operators.
func (p *Pixmap) paint(cov *image.Alpha, src RGBA, alpha float32, op CompositeOp) {
	bop := blendOp(op)
	area := cov.Rect.Intersect(p.img.Rect)
	if bop.Unbounded() {
		area = p.img.Rect
	}

	a := float32(src.A) * alpha
	full := blend.Color{
		R: float32(src.R) * a,
		G: float32(src.G) * a,
		B: float32(src.B) * a,
		A: a,
	}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			c := float32(cov.AlphaAt(x, y).A) / 255
			if c == 0 && !bop.Unbounded() {
				continue
			}
			d := p.get(x, y)
			base := d
			if bop.Unbounded() {
				base = blend.Composite(bop, blend.Color{}, d)
			}
			p.set(x, y, blend.Lerp(base, blend.Composite(bop, full, d), c))
		}
	}
}

// clear erases pixels to transparent black in proportion to coverage.
func (p *Pixmap) clear(cov *image.Alpha) {
	area := cov.Rect.Intersect(p.img.Rect)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			c := float32(cov.AlphaAt(x, y).A) / 255
			if c == 0 {
				continue
			}
			p.set(x, y, blend.Lerp(p.get(x, y), blend.Color{}, c))
		}
	}
}

func (p *Pixmap) get(x, y int) blend.Color {
	i := p.img.PixOffset(x, y)
	s := p.img.Pix[i : i+4 : i+4]
	return blend.Color{
		R: float32(s[0]) / 255,
		G: float32(s[1]) / 255,
		B: float32(s[2]) / 255,
		A: float32(s[3]) / 255,
	}
}

func (p *Pixmap) set(x, y int, c blend.Color) {
	i := p.img.PixOffset(x, y)
	s := p.img.Pix[i : i+4 : i+4]
	s[0] = unit8(float64(c.R))
	s[1] = unit8(float64(c.G))
	s[2] = unit8(float64(c.B))
	s[3] = unit8(float64(c.A))
}

// blendOp maps a canvas composite operation to its blend operator.
func blendOp(op CompositeOp) blend.Op {
	switch op {
	case CompositeSourceOver:
		return blend.SourceOver
	case CompositeSourceIn:
		return blend.SourceIn
	case CompositeSourceOut:
		return blend.SourceOut
	case CompositeSourceAtop:
		return blend.SourceAtop
	case CompositeDestinationOver:
		return blend.DestinationOver
	case CompositeDestinationIn:
		return blend.DestinationIn
	case CompositeDestinationOut:
		return blend.DestinationOut
	case CompositeDestinationAtop:
		return blend.DestinationAtop
	case CompositeLighter:
		return blend.Lighter
	case CompositeCopy:
		return blend.Copy
	case CompositeXor:
		return blend.Xor
	case CompositeClear:
		return blend.Clear
	case CompositeMultiply:
		return blend.Multiply
	case CompositeScreen:
		return blend.Screen
	case CompositeOverlay:
		return blend.Overlay
	case CompositeDarken:
		return blend.Darken
	case CompositeLighten:
		return blend.Lighten
	case CompositeColorDodge:
		return blend.ColorDodge
	case CompositeColorBurn:
		return blend.ColorBurn
	case CompositeHardLight:
		return blend.HardLight
	case CompositeSoftLight:
		return blend.SoftLight
	case CompositeDifference:
		return blend.Difference
	case CompositeExclusion:
		return blend.Exclusion
	case CompositeHue:
		return blend.Hue
	case CompositeSaturation:
		return blend.Saturation
	case CompositeColor:
		return blend.ColorMode
	case CompositeLuminosity:
		return blend.Luminosity
	}
	return blend.SourceOver
}
