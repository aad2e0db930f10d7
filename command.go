package canvas

import "image"

// CommandType identifies a command variant.
type CommandType uint8

const (
	// Drawing commands
	CmdFillRect   CommandType = iota // Fill a rectangle
	CmdStrokeRect                    // Stroke a rectangle outline
	CmdClearRect                     // Clear a rectangle to transparent black

	// Surface commands
	CmdRecreate // Reallocate the backing buffer
	CmdSnapshot // Copy the backing buffer out
	CmdClose    // Release resources and stop
)

var commandTypeNames = [...]string{
	CmdFillRect:   "FillRect",
	CmdStrokeRect: "StrokeRect",
	CmdClearRect:  "ClearRect",
	CmdRecreate:   "Recreate",
	CmdSnapshot:   "Snapshot",
	CmdClose:      "Close",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a message from a context to its renderer. The set of variants
// is closed: only this package implements Command. Every variant carries its
// data by value, so a command can be handed to another goroutine without
// synchronization.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	command()
}

// Rect is an axis-aligned rectangle in single precision. Width and Height
// may be zero or negative; renderers decide what a degenerate rectangle
// paints.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// newRect narrows caller coordinates to the renderer's precision. Every
// rectangle operation goes through here.
func newRect(x, y, w, h float64) Rect {
	return Rect{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
}

// Size is a surface size in pixels.
type Size struct {
	Width, Height int
}

// Bounds returns the pixel rectangle covered by s.
func (s Size) Bounds() image.Rectangle {
	return image.Rect(0, 0, max(s.Width, 0), max(s.Height, 0))
}

// Style is the snapshot of drawing state read by a paint command.
type Style struct {
	FillColor   RGBA
	StrokeColor RGBA
	GlobalAlpha float32
	Composite   CompositeOp
	LineWidth   float32
	LineJoin    LineJoin
	LineCap     LineCap
	MiterLimit  float32
	DashOffset  float32
	ShadowBlur  float32
}

// FillRectCommand fills a rectangle with the fill color.
type FillRectCommand struct {
	Rect  Rect
	Style Style
}

// StrokeRectCommand strokes the outline of a rectangle with the stroke
// color and line attributes.
type StrokeRectCommand struct {
	Rect  Rect
	Style Style
}

// ClearRectCommand sets every pixel in a rectangle to transparent black.
// It ignores alpha and composite settings.
type ClearRectCommand struct {
	Rect Rect
}

// RecreateCommand asks the renderer to reallocate its buffer at Size.
// Sending the current size again yields a fresh, cleared buffer.
type RecreateCommand struct {
	Size Size
}

// SnapshotCommand asks the renderer for a copy of its buffer. The renderer
// sends exactly one image on Reply, which must have room for it.
type SnapshotCommand struct {
	Reply chan<- *image.RGBA
}

// CloseCommand tells the renderer to release its resources and stop. It is
// the last command a context sends.
type CloseCommand struct{}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// Type implements Command.
func (StrokeRectCommand) Type() CommandType { return CmdStrokeRect }

// Type implements Command.
func (ClearRectCommand) Type() CommandType { return CmdClearRect }

// Type implements Command.
func (RecreateCommand) Type() CommandType { return CmdRecreate }

// Type implements Command.
func (SnapshotCommand) Type() CommandType { return CmdSnapshot }

// Type implements Command.
func (CloseCommand) Type() CommandType { return CmdClose }

func (FillRectCommand) command()   {}
func (StrokeRectCommand) command() {}
func (ClearRectCommand) command()  {}
func (RecreateCommand) command()   {}
func (SnapshotCommand) command()   {}
func (CloseCommand) command()      {}
