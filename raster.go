package canvas

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"
)

// point is a device-space vertex.
type point struct {
	X, Y float32
}

// contour is a closed polygon. Outer contours run clockwise on screen and
// holes counter-clockwise, so the rasterizer's non-zero accumulation leaves
// holes empty.
type contour []point

// arcSegments is the number of line segments per quarter turn of a round
// join or cap.
const arcSegments = 8

// normalized returns r with non-negative width and height.
func (r Rect) normalized() (x0, y0, x1, y1 float32) {
	x0, x1 = r.X, r.X+r.Width
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 = r.Y, r.Y+r.Height
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}

func (r Rect) finite() bool {
	for _, v := range [...]float32{r.X, r.Y, r.Width, r.Height} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// fillContours returns the area covered by filling r.
func fillContours(r Rect) []contour {
	if !r.finite() || r.Width == 0 || r.Height == 0 {
		return nil
	}
	x0, y0, x1, y1 := r.normalized()
	return []contour{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}}
}

// strokeContours returns the area covered by stroking the outline of r.
// A rectangle with one zero side strokes as a line with caps; with both
// sides zero nothing is painted.
func strokeContours(r Rect, st Style) []contour {
	hw := st.LineWidth / 2
	if !r.finite() || !(hw > 0) || math32.IsInf(hw, 0) {
		return nil
	}
	if r.Width == 0 && r.Height == 0 {
		return nil
	}

	x0, y0, x1, y1 := r.normalized()
	if r.Width == 0 || r.Height == 0 {
		return []contour{lineContour(x0, y0, x1, y1, hw, st.LineCap)}
	}

	outer := make(contour, 0, 4*(arcSegments+1))
	join := st.LineJoin
	// The miter length ratio of a right angle is sqrt(2).
	if join == LineJoinMiter && st.MiterLimit < math32.Sqrt2 {
		join = LineJoinBevel
	}
	corners := [4]struct {
		c     point
		start float32 // angle of the incoming edge normal
	}{
		{point{x1, y0}, -math32.Pi / 2},
		{point{x1, y1}, 0},
		{point{x0, y1}, math32.Pi / 2},
		{point{x0, y0}, math32.Pi},
	}
	for _, k := range corners {
		switch join {
		case LineJoinMiter:
			mid := k.start + math32.Pi/4
			d := hw * math32.Sqrt2
			outer = append(outer, point{k.c.X + d*math32.Cos(mid), k.c.Y + d*math32.Sin(mid)})
		case LineJoinBevel:
			outer = append(outer, polar(k.c, hw, k.start), polar(k.c, hw, k.start+math32.Pi/2))
		case LineJoinRound:
			outer = appendArc(outer, k.c, hw, k.start, k.start+math32.Pi/2)
		}
	}

	contours := []contour{outer}
	if x1-x0 > 2*hw && y1-y0 > 2*hw {
		contours = append(contours, contour{
			{x0 + hw, y0 + hw},
			{x0 + hw, y1 - hw},
			{x1 - hw, y1 - hw},
			{x1 - hw, y0 + hw},
		})
	}
	return contours
}

// lineContour outlines an axis-aligned segment of half width hw.
func lineContour(x0, y0, x1, y1, hw float32, lc LineCap) contour {
	a, b := point{x0, y0}, point{x1, y1}
	// direction angle of the segment
	dir := float32(0)
	if x0 == x1 {
		dir = math32.Pi / 2
	}
	ext := float32(0)
	if lc == LineCapSquare {
		ext = hw
	}
	a = polar(a, ext, dir+math32.Pi)
	b = polar(b, ext, dir)

	c := make(contour, 0, 2*(2*arcSegments+1))
	if lc == LineCapRound {
		c = appendArc(c, b, hw, dir-math32.Pi/2, dir+math32.Pi/2)
		c = appendArc(c, a, hw, dir+math32.Pi/2, dir+3*math32.Pi/2)
		return c
	}
	return append(c,
		polar(a, hw, dir-math32.Pi/2),
		polar(b, hw, dir-math32.Pi/2),
		polar(b, hw, dir+math32.Pi/2),
		polar(a, hw, dir+math32.Pi/2),
	)
}

func polar(c point, r, angle float32) point {
	return point{c.X + r*math32.Cos(angle), c.Y + r*math32.Sin(angle)}
}

// appendArc appends points on the arc from a0 to a1 (a1 > a0), clockwise on
// screen.
func appendArc(dst contour, c point, r, a0, a1 float32) contour {
	n := int(math32.Ceil((a1 - a0) / (math32.Pi / 2) * arcSegments))
	n = max(n, 1)
	for i := 0; i <= n; i++ {
		dst = append(dst, polar(c, r, a0+(a1-a0)*float32(i)/float32(n)))
	}
	return dst
}

// coverage rasterizes contours into an anti-aliased mask clipped to clip.
// The mask's bounds are the clipped bounding box, possibly empty.
func coverage(contours []contour, clip image.Rectangle) *image.Alpha {
	bb := bounds(contours).Intersect(clip)
	mask := image.NewAlpha(bb)
	if bb.Empty() {
		return mask
	}

	// The rasterizer works in fixed point and drops edges far outside its
	// area, so contours are first clipped to the mask plus a pixel margin.
	margin := box{
		x0: float32(bb.Min.X - 1), y0: float32(bb.Min.Y - 1),
		x1: float32(bb.Max.X + 1), y1: float32(bb.Max.Y + 1),
	}
	z := vector.NewRasterizer(bb.Dx(), bb.Dy())
	ox, oy := float32(bb.Min.X), float32(bb.Min.Y)
	for _, c := range contours {
		c = clipContour(c, margin)
		if len(c) < 3 {
			continue
		}
		z.MoveTo(c[0].X-ox, c[0].Y-oy)
		for _, p := range c[1:] {
			z.LineTo(p.X-ox, p.Y-oy)
		}
		z.ClosePath()
	}
	z.Draw(mask, bb, image.Opaque, image.Point{})
	return mask
}

// bounds returns the integer pixel box enclosing every contour.
func bounds(contours []contour) image.Rectangle {
	if len(contours) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for _, c := range contours {
		for _, p := range c {
			minX, maxX = math32.Min(minX, p.X), math32.Max(maxX, p.X)
			minY, maxY = math32.Min(minY, p.Y), math32.Max(maxY, p.Y)
		}
	}
	// Clamp before converting so huge coordinates do not overflow int.
	const limit = 1 << 24
	return image.Rect(
		int(math32.Floor(clampf(minX, -limit, limit))),
		int(math32.Floor(clampf(minY, -limit, limit))),
		int(math32.Ceil(clampf(maxX, -limit, limit))),
		int(math32.Ceil(clampf(maxY, -limit, limit))),
	)
}

func clampf(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// box is an axis-aligned clip rectangle in device space.
type box struct {
	x0, y0, x1, y1 float32
}

// coordLimit keeps clipped coordinates far from float32 overflow.
const coordLimit = 1e30

// clipContour clips c to b one edge at a time (Sutherland-Hodgman). The
// result keeps the winding of c and may be empty.
func clipContour(c contour, b box) contour {
	out := make(contour, len(c))
	for i, p := range c {
		out[i] = point{clampf(p.X, -coordLimit, coordLimit), clampf(p.Y, -coordLimit, coordLimit)}
	}
	out = clipEdge(out, func(p point) bool { return p.X >= b.x0 }, func(p, q point) point { return atX(p, q, b.x0) })
	out = clipEdge(out, func(p point) bool { return p.X <= b.x1 }, func(p, q point) point { return atX(p, q, b.x1) })
	out = clipEdge(out, func(p point) bool { return p.Y >= b.y0 }, func(p, q point) point { return atY(p, q, b.y0) })
	out = clipEdge(out, func(p point) bool { return p.Y <= b.y1 }, func(p, q point) point { return atY(p, q, b.y1) })
	return out
}

func clipEdge(in contour, inside func(point) bool, cross func(p, q point) point) contour {
	if len(in) == 0 {
		return nil
	}
	out := make(contour, 0, len(in)+4)
	prev := in[len(in)-1]
	for _, cur := range in {
		switch {
		case inside(cur):
			if !inside(prev) {
				out = append(out, cross(prev, cur))
			}
			out = append(out, cur)
		case inside(prev):
			out = append(out, cross(prev, cur))
		}
		prev = cur
	}
	return out
}

// atX returns the point of segment pq at x. p and q lie on opposite sides.
func atX(p, q point, x float32) point {
	t := (x - p.X) / (q.X - p.X)
	return point{x, p.Y + t*(q.Y-p.Y)}
}

// atY returns the point of segment pq at y. p and q lie on opposite sides.
func atY(p, q point, y float32) point {
	t := (y - p.Y) / (q.Y - p.Y)
	return point{p.X + t*(q.X-p.X), y}
}
