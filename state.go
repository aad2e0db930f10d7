package canvas

import "fmt"

// TextAlign is the horizontal text anchor.
type TextAlign uint8

// Text alignment keywords of the canvas textAlign attribute.
const (
	TextAlignStart  TextAlign = iota // Anchor at the start edge for the writing direction
	TextAlignEnd                     // Anchor at the end edge for the writing direction
	TextAlignLeft                    // Anchor at the left edge
	TextAlignRight                   // Anchor at the right edge
	TextAlignCenter                  // Anchor at the center
)

var textAlignNames = [...]string{
	TextAlignStart:  "start",
	TextAlignEnd:    "end",
	TextAlignLeft:   "left",
	TextAlignRight:  "right",
	TextAlignCenter: "center",
}

// String returns the textAlign keyword.
func (a TextAlign) String() string { return enumName(textAlignNames[:], int(a)) }

// ParseTextAlign parses a canvas textAlign keyword.
func ParseTextAlign(s string) (TextAlign, error) {
	i, err := parseEnum("text align", textAlignNames[:], s)
	return TextAlign(i), err
}

// TextBaseline is the vertical text anchor.
type TextBaseline uint8

// Baseline keywords of the canvas textBaseline attribute.
const (
	TextBaselineTop         TextBaseline = iota // Top of the em square
	TextBaselineHanging                         // Hanging baseline
	TextBaselineMiddle                          // Middle of the em square
	TextBaselineAlphabetic                      // Alphabetic baseline
	TextBaselineIdeographic                     // Ideographic baseline
	TextBaselineBottom                          // Bottom of the em square
)

var textBaselineNames = [...]string{
	TextBaselineTop:         "top",
	TextBaselineHanging:     "hanging",
	TextBaselineMiddle:      "middle",
	TextBaselineAlphabetic:  "alphabetic",
	TextBaselineIdeographic: "ideographic",
	TextBaselineBottom:      "bottom",
}

// String returns the textBaseline keyword.
func (b TextBaseline) String() string { return enumName(textBaselineNames[:], int(b)) }

// ParseTextBaseline parses a canvas textBaseline keyword.
func ParseTextBaseline(s string) (TextBaseline, error) {
	i, err := parseEnum("text baseline", textBaselineNames[:], s)
	return TextBaseline(i), err
}

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

var lineCapNames = [...]string{
	LineCapButt:   "butt",
	LineCapRound:  "round",
	LineCapSquare: "square",
}

func (c LineCap) String() string { return enumName(lineCapNames[:], int(c)) }

// ParseLineCap parses a canvas lineCap keyword.
func ParseLineCap(s string) (LineCap, error) {
	i, err := parseEnum("line cap", lineCapNames[:], s)
	return LineCap(i), err
}

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join. It falls back to a
	// bevel when the miter limit is exceeded.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

var lineJoinNames = [...]string{
	LineJoinMiter: "miter",
	LineJoinRound: "round",
	LineJoinBevel: "bevel",
}

func (j LineJoin) String() string { return enumName(lineJoinNames[:], int(j)) }

// ParseLineJoin parses a canvas lineJoin keyword.
func ParseLineJoin(s string) (LineJoin, error) {
	i, err := parseEnum("line join", lineJoinNames[:], s)
	return LineJoin(i), err
}

// CompositeOp is the globalCompositeOperation applied when a shape is
// painted. The first twelve are Porter-Duff operators, the rest are blend
// modes composited with source-over.
type CompositeOp uint8

// Compositing operators of the canvas globalCompositeOperation attribute.
const (
	// Porter-Duff operators
	CompositeSourceOver      CompositeOp = iota // Source over destination [default]
	CompositeSourceIn                           // Source where destination is opaque
	CompositeSourceOut                          // Source where destination is transparent
	CompositeSourceAtop                         // Source over destination, only where destination is opaque
	CompositeDestinationOver                    // Destination over source
	CompositeDestinationIn                      // Destination where source is opaque
	CompositeDestinationOut                     // Destination where source is transparent
	CompositeDestinationAtop                    // Destination over source, only where source is opaque
	CompositeLighter                            // Sum of source and destination
	CompositeCopy                               // Source only
	CompositeXor                                // Source or destination, not both
	CompositeClear                              // Transparent black

	// Blend modes
	CompositeMultiply   // Product of source and destination
	CompositeScreen     // Inverse product of inverses
	CompositeOverlay    // Multiply or screen depending on destination
	CompositeDarken     // Darker of source and destination
	CompositeLighten    // Lighter of source and destination
	CompositeColorDodge // Brighten destination by source
	CompositeColorBurn  // Darken destination by source
	CompositeHardLight  // Multiply or screen depending on source
	CompositeSoftLight  // Softer hard-light
	CompositeDifference // Absolute difference
	CompositeExclusion  // Lower-contrast difference
	CompositeHue        // Source hue, destination saturation and luminosity
	CompositeSaturation // Source saturation, destination hue and luminosity
	CompositeColor      // Source hue and saturation, destination luminosity
	CompositeLuminosity // Source luminosity, destination hue and saturation
)

var compositeOpNames = [...]string{
	CompositeSourceOver:      "source-over",
	CompositeSourceIn:        "source-in",
	CompositeSourceOut:       "source-out",
	CompositeSourceAtop:      "source-atop",
	CompositeDestinationOver: "destination-over",
	CompositeDestinationIn:   "destination-in",
	CompositeDestinationOut:  "destination-out",
	CompositeDestinationAtop: "destination-atop",
	CompositeLighter:         "lighter",
	CompositeCopy:            "copy",
	CompositeXor:             "xor",
	CompositeClear:           "clear",
	CompositeMultiply:        "multiply",
	CompositeScreen:          "screen",
	CompositeOverlay:         "overlay",
	CompositeDarken:          "darken",
	CompositeLighten:         "lighten",
	CompositeColorDodge:      "color-dodge",
	CompositeColorBurn:       "color-burn",
	CompositeHardLight:       "hard-light",
	CompositeSoftLight:       "soft-light",
	CompositeDifference:      "difference",
	CompositeExclusion:       "exclusion",
	CompositeHue:             "hue",
	CompositeSaturation:      "saturation",
	CompositeColor:           "color",
	CompositeLuminosity:      "luminosity",
}

// String returns the globalCompositeOperation keyword.
func (op CompositeOp) String() string { return enumName(compositeOpNames[:], int(op)) }

// ParseCompositeOp parses a canvas globalCompositeOperation keyword.
func ParseCompositeOp(s string) (CompositeOp, error) {
	i, err := parseEnum("composite operation", compositeOpNames[:], s)
	return CompositeOp(i), err
}

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return "unknown"
}

// parseEnum matches keywords exactly; canvas keywords are case-sensitive.
func parseEnum(what string, names []string, s string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown %s %q", what, s)
}

// State is one frame of drawing attributes. It is a plain value: copying a
// State copies every attribute.
type State struct {
	TextAlign    TextAlign
	TextBaseline TextBaseline
	LineWidth    float64
	LineJoin     LineJoin
	LineCap      LineCap
	MiterLimit   float64
	DashOffset   float64
	GlobalAlpha  float64
	ShadowBlur   float64
	CompositeOp  CompositeOp
	FillStyle    RGBA
	StrokeStyle  RGBA
}

// DefaultState returns the attributes of a freshly created context.
func DefaultState() State {
	return State{
		TextAlign:    TextAlignStart,
		TextBaseline: TextBaselineAlphabetic,
		LineWidth:    1.0,
		LineJoin:     LineJoinMiter,
		LineCap:      LineCapButt,
		MiterLimit:   10.0,
		DashOffset:   0.0,
		GlobalAlpha:  1.0,
		ShadowBlur:   0.0,
		CompositeOp:  CompositeSourceOver,
		FillStyle:    Black,
		StrokeStyle:  Black,
	}
}

// style narrows the attributes a paint operation reads into a command
// snapshot.
func (s *State) style() Style {
	return Style{
		FillColor:   s.FillStyle,
		StrokeColor: s.StrokeStyle,
		GlobalAlpha: float32(s.GlobalAlpha),
		Composite:   s.CompositeOp,
		LineWidth:   float32(s.LineWidth),
		LineJoin:    s.LineJoin,
		LineCap:     s.LineCap,
		MiterLimit:  float32(s.MiterLimit),
		DashOffset:  float32(s.DashOffset),
		ShadowBlur:  float32(s.ShadowBlur),
	}
}
