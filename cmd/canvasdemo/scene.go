package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/canvas"
	"github.com/pelletier/go-toml/v2"
)

// Scene is a drawing script: a canvas size and an ordered list of
// operations.
//
//	width = 320
//	height = 200
//
//	[[op]]
//	kind = "set"
//	fillStyle = "#3498db"
//
//	[[op]]
//	kind = "fillRect"
//	rect = [10, 10, 100, 50]
type Scene struct {
	Width  int  `toml:"width"`
	Height int  `toml:"height"`
	Ops    []Op `toml:"op"`

	steps []step
}

// Op is one scene operation. Kind selects which of the other fields apply.
type Op struct {
	Kind string    `toml:"kind"`
	Rect []float64 `toml:"rect"`
	Size []int     `toml:"size"`

	FillStyle      string   `toml:"fillStyle"`
	StrokeStyle    string   `toml:"strokeStyle"`
	LineWidth      *float64 `toml:"lineWidth"`
	LineJoin       string   `toml:"lineJoin"`
	LineCap        string   `toml:"lineCap"`
	MiterLimit     *float64 `toml:"miterLimit"`
	LineDashOffset *float64 `toml:"lineDashOffset"`
	GlobalAlpha    *float64 `toml:"globalAlpha"`
	ShadowBlur     *float64 `toml:"shadowBlur"`
	Composite      string   `toml:"globalCompositeOperation"`
	TextAlign      string   `toml:"textAlign"`
	TextBaseline   string   `toml:"textBaseline"`
}

// target is what a scene draws on.
type target struct {
	dc *canvas.Context
	el *canvas.Element
	// base is the stack depth a scene may not restore below.
	base int
}

type step func(t *target)

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a TOML scene. Unknown keys, unknown operation kinds and
// malformed values are errors.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("scene: %s", strict.String())
		}
		return nil, fmt.Errorf("scene: %w", err)
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("scene: negative size %dx%d", s.Width, s.Height)
	}

	s.steps = make([]step, 0, len(s.Ops))
	for i, op := range s.Ops {
		st, err := op.compile()
		if err != nil {
			return nil, fmt.Errorf("scene: op %d (%s): %w", i+1, op.Kind, err)
		}
		s.steps = append(s.steps, st)
	}
	return &s, nil
}

// Size returns the canvas size the scene starts with.
func (s *Scene) Size() canvas.Size {
	return canvas.Size{Width: s.Width, Height: s.Height}
}

// Play resizes el to the scene size, which clears the renderer buffer, and
// runs the operations on dc. State changes made by the scene are undone
// when Play returns.
func (s *Scene) Play(dc *canvas.Context, el *canvas.Element) {
	el.SetSize(s.Size())

	dc.Save()
	t := &target{dc: dc, el: el, base: dc.StackDepth()}
	for _, st := range s.steps {
		st(t)
	}
	for dc.StackDepth() >= t.base {
		dc.Restore()
	}
}

func (op Op) compile() (step, error) {
	switch op.Kind {
	case "save":
		return func(t *target) { t.dc.Save() }, nil
	case "restore":
		return func(t *target) {
			if t.dc.StackDepth() > t.base {
				t.dc.Restore()
			}
		}, nil
	case "fillRect", "strokeRect", "clearRect":
		return op.compileRect()
	case "resize":
		if len(op.Size) != 2 {
			return nil, fmt.Errorf("size needs [width, height], got %d values", len(op.Size))
		}
		size := canvas.Size{Width: op.Size[0], Height: op.Size[1]}
		return func(t *target) { t.el.SetSize(size) }, nil
	case "set":
		return op.compileSet()
	case "":
		return nil, errors.New("missing kind")
	}
	return nil, fmt.Errorf("unknown kind %q", op.Kind)
}

func (op Op) compileRect() (step, error) {
	if len(op.Rect) != 4 {
		return nil, fmt.Errorf("rect needs [x, y, width, height], got %d values", len(op.Rect))
	}
	x, y, w, h := op.Rect[0], op.Rect[1], op.Rect[2], op.Rect[3]
	switch op.Kind {
	case "fillRect":
		return func(t *target) { t.dc.FillRect(x, y, w, h) }, nil
	case "strokeRect":
		return func(t *target) { t.dc.StrokeRect(x, y, w, h) }, nil
	default:
		return func(t *target) { t.dc.ClearRect(x, y, w, h) }, nil
	}
}

// compileSet validates every attribute of a set operation up front and
// returns a step that applies them in a fixed order.
func (op Op) compileSet() (step, error) {
	var setters []func(*canvas.Context)
	add := func(fn func(*canvas.Context)) { setters = append(setters, fn) }

	if op.FillStyle != "" {
		c, err := canvas.ParseHex(op.FillStyle)
		if err != nil {
			return nil, err
		}
		add(func(dc *canvas.Context) { dc.SetFillStyle(c) })
	}
	if op.StrokeStyle != "" {
		c, err := canvas.ParseHex(op.StrokeStyle)
		if err != nil {
			return nil, err
		}
		add(func(dc *canvas.Context) { dc.SetStrokeStyle(c) })
	}
	if op.LineJoin != "" {
		j, err := canvas.ParseLineJoin(op.LineJoin)
		if err != nil {
			return nil, err
		}
		add(func(dc *canvas.Context) { dc.SetLineJoin(j) })
	}
	if op.LineCap != "" {
		lc, err := canvas.ParseLineCap(op.LineCap)
		if err != nil {
			return nil, err
		}
		add(func(dc *canvas.Context) { dc.SetLineCap(lc) })
	}
	if op.Composite != "" {
		c, err := canvas.ParseCompositeOp(op.Composite)
		if err != nil {
			return nil, err
		}
		add(func(dc *canvas.Context) { dc.SetGlobalCompositeOperation(c) })
	}
	if op.TextAlign != "" {
		a, err := canvas.ParseTextAlign(op.TextAlign)
		if err != nil {
			return nil, err
		}
		add(func(dc *canvas.Context) { dc.SetTextAlign(a) })
	}
	if op.TextBaseline != "" {
		b, err := canvas.ParseTextBaseline(op.TextBaseline)
		if err != nil {
			return nil, err
		}
		add(func(dc *canvas.Context) { dc.SetTextBaseline(b) })
	}

	// Numeric attributes keep canvas semantics: invalid values are ignored
	// by the context, not rejected here.
	numeric := []struct {
		v   *float64
		set func(*canvas.Context, float64)
	}{
		{op.LineWidth, (*canvas.Context).SetLineWidth},
		{op.MiterLimit, (*canvas.Context).SetMiterLimit},
		{op.LineDashOffset, (*canvas.Context).SetLineDashOffset},
		{op.GlobalAlpha, (*canvas.Context).SetGlobalAlpha},
		{op.ShadowBlur, (*canvas.Context).SetShadowBlur},
	}
	for _, n := range numeric {
		if n.v == nil {
			continue
		}
		v, set := *n.v, n.set
		add(func(dc *canvas.Context) { set(dc, v) })
	}

	if len(setters) == 0 {
		return nil, errors.New("set without attributes")
	}
	return func(t *target) {
		for _, fn := range setters {
			fn(t.dc)
		}
	}, nil
}
