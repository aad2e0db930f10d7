// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"
)

// Context is an asynchronous 2D drawing context.
//
// It owns a save/restore stack of drawing state and a channel to a renderer.
// Every drawing call reads the current state, packs what it needs into a
// Command and sends it without waiting. Pixels live in the renderer only.
//
// A Context is meant to be driven by one goroutine. Resize notifications
// from its surface and the cleanup that closes an abandoned context may
// arrive on other goroutines; those paths are synchronized.
type Context struct {
	surface Surface
	stack   *StateStack
	link    *rendererLink
}

// Ensure Context implements io.Closer
var _ io.Closer = (*Context)(nil)

// rendererLink is the part of a Context that talks to the renderer. It is
// split out so that resize callbacks and the runtime cleanup can reach it
// without keeping the Context itself alive.
type rendererLink struct {
	mu          sync.Mutex
	sender      *Sender
	logger      *slog.Logger
	err         error
	closed      bool
	unsubscribe func()
}

// NewContext creates a context drawing to surface. It reads the surface
// size, starts a renderer of that size and returns without waiting for the
// renderer to be ready.
//
// If surface implements ResizeNotifier, the context follows its size
// changes by sending RecreateCommand.
func NewContext(surface Surface, opts ...ContextOption) (*Context, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	size := surface.Size()
	sender, err := options.start(size)
	if err != nil {
		return nil, fmt.Errorf("canvas: start renderer: %w", err)
	}

	link := &rendererLink{sender: sender, logger: options.logger}
	c := &Context{
		surface: surface,
		stack:   NewStateStack(),
		link:    link,
	}

	if rn, ok := surface.(ResizeNotifier); ok {
		link.unsubscribe = rn.OnResize(func(size Size) {
			link.send(RecreateCommand{Size: size})
		})
	}

	runtime.AddCleanup(c, func(l *rendererLink) {
		if closed, _ := l.close(); closed {
			l.log().Debug("canvas: context released without Close")
		}
	}, link)

	link.log().Debug("canvas: context created", "width", size.Width, "height", size.Height)
	return c, nil
}

// Canvas returns the surface this context draws to. The surface is shared,
// not copied.
func (c *Context) Canvas() Surface {
	return c.surface
}

// Close sends CloseCommand to the renderer and stops the context. Only the
// first call sends; later calls return nil. Implements io.Closer.
//
// If the renderer was already lost, Close returns that error.
func (c *Context) Close() error {
	_, err := c.link.close()
	return err
}

// Err reports why the context stopped accepting operations: a wrapped
// ErrRendererGone if the renderer became unreachable, or ErrContextClosed
// after Close. It returns nil while the context is usable.
func (c *Context) Err() error {
	return c.link.error()
}

// Save pushes a copy of the current state.
func (c *Context) Save() {
	c.stack.Push()
}

// Restore pops the state saved by the matching Save. Without a matching
// Save it does nothing.
func (c *Context) Restore() {
	if !c.stack.Pop() {
		c.link.log().Debug("canvas: restore without matching save")
	}
}

// StackDepth returns the number of state frames, including the current one.
func (c *Context) StackDepth() int {
	return c.stack.Len()
}

// State returns a copy of the current drawing state.
func (c *Context) State() State {
	return *c.stack.Current()
}

// FillRect paints the rectangle with the fill style.
func (c *Context) FillRect(x, y, w, h float64) {
	c.link.send(FillRectCommand{Rect: newRect(x, y, w, h), Style: c.stack.Current().style()})
}

// StrokeRect paints the outline of the rectangle with the stroke style and
// line attributes.
func (c *Context) StrokeRect(x, y, w, h float64) {
	c.link.send(StrokeRectCommand{Rect: newRect(x, y, w, h), Style: c.stack.Current().style()})
}

// ClearRect clears the rectangle to transparent black.
func (c *Context) ClearRect(x, y, w, h float64) {
	c.link.send(ClearRectCommand{Rect: newRect(x, y, w, h)})
}

// Recreate tells the renderer to reallocate its buffer at size. The drawing
// state is kept.
func (c *Context) Recreate(size Size) {
	c.link.send(RecreateCommand{Size: size})
}

// SurfaceResized re-reads the surface size and recreates the renderer
// buffer. Use it with surfaces that do not implement ResizeNotifier.
func (c *Context) SurfaceResized() {
	c.Recreate(c.surface.Size())
}

// Snapshot returns a copy of the renderer's pixels after every command sent
// so far has been executed. Unlike the drawing calls it waits for the
// renderer, bounded by ctx.
func (c *Context) Snapshot(ctx context.Context) (*image.RGBA, error) {
	reply := make(chan *image.RGBA, 1)
	c.link.send(SnapshotCommand{Reply: reply})
	if err := c.link.error(); err != nil {
		return nil, err
	}

	select {
	case img := <-reply:
		return img, nil
	case <-c.link.sender.Done():
		select {
		case img := <-reply:
			return img, nil
		default:
			return nil, fmt.Errorf("canvas: snapshot: %w", ErrRendererGone)
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SetFillStyle sets the color used by FillRect. Colors with a non-finite
// component are ignored.
func (c *Context) SetFillStyle(col RGBA) {
	if !finiteColor(col) {
		c.ignoredColor("fillStyle", col)
		return
	}
	c.stack.Current().FillStyle = col
}

// SetStrokeStyle sets the color used by StrokeRect. Colors with a
// non-finite component are ignored.
func (c *Context) SetStrokeStyle(col RGBA) {
	if !finiteColor(col) {
		c.ignoredColor("strokeStyle", col)
		return
	}
	c.stack.Current().StrokeStyle = col
}

// SetLineWidth sets the stroke width. Zero, negative and non-finite values
// are ignored.
func (c *Context) SetLineWidth(w float64) {
	if !finite(w) || w <= 0 {
		c.ignored("lineWidth", w)
		return
	}
	c.stack.Current().LineWidth = w
}

// SetLineJoin sets the shape of stroke corners.
func (c *Context) SetLineJoin(j LineJoin) {
	c.stack.Current().LineJoin = j
}

// SetLineCap sets the shape of stroke ends.
func (c *Context) SetLineCap(lc LineCap) {
	c.stack.Current().LineCap = lc
}

// SetMiterLimit sets the miter limit. Zero, negative and non-finite values
// are ignored.
func (c *Context) SetMiterLimit(limit float64) {
	if !finite(limit) || limit <= 0 {
		c.ignored("miterLimit", limit)
		return
	}
	c.stack.Current().MiterLimit = limit
}

// SetLineDashOffset sets the dash phase. Non-finite values are ignored.
func (c *Context) SetLineDashOffset(offset float64) {
	if !finite(offset) {
		c.ignored("lineDashOffset", offset)
		return
	}
	c.stack.Current().DashOffset = offset
}

// SetGlobalAlpha sets the alpha applied to everything painted. Values
// outside [0, 1] are ignored.
func (c *Context) SetGlobalAlpha(alpha float64) {
	if !finite(alpha) || alpha < 0 || alpha > 1 {
		c.ignored("globalAlpha", alpha)
		return
	}
	c.stack.Current().GlobalAlpha = alpha
}

// SetShadowBlur sets the shadow blur level. Negative and non-finite values
// are ignored.
func (c *Context) SetShadowBlur(blur float64) {
	if !finite(blur) || blur < 0 {
		c.ignored("shadowBlur", blur)
		return
	}
	c.stack.Current().ShadowBlur = blur
}

// SetGlobalCompositeOperation sets how painted pixels combine with the
// existing ones.
func (c *Context) SetGlobalCompositeOperation(op CompositeOp) {
	c.stack.Current().CompositeOp = op
}

// SetTextAlign sets the horizontal text anchor.
func (c *Context) SetTextAlign(a TextAlign) {
	c.stack.Current().TextAlign = a
}

// SetTextBaseline sets the vertical text anchor.
func (c *Context) SetTextBaseline(b TextBaseline) {
	c.stack.Current().TextBaseline = b
}

func (c *Context) ignored(attr string, v float64) {
	c.link.log().Debug("canvas: ignoring attribute value", "attr", attr, "value", v)
}

func (c *Context) ignoredColor(attr string, col RGBA) {
	c.link.log().Debug("canvas: ignoring attribute value", "attr", attr, "value", col)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteColor(col RGBA) bool {
	return finite(col.R) && finite(col.G) && finite(col.B) && finite(col.A)
}

func (l *rendererLink) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return Logger()
}

func (l *rendererLink) error() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// send delivers cmd unless the link has failed or closed. The first failed
// send poisons the link: the renderer is treated as gone for good.
func (l *rendererLink) send(cmd Command) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		if errors.Is(l.err, ErrContextClosed) {
			l.log().Warn("canvas: operation on closed context", "command", cmd.Type())
		} else {
			l.log().Debug("canvas: dropping command", "command", cmd.Type(), "err", l.err)
		}
		return
	}

	if err := l.sender.Send(cmd); err != nil {
		l.err = fmt.Errorf("canvas: send %s: %w", cmd.Type(), err)
		l.log().Error("canvas: renderer lost", "command", cmd.Type(), "err", err)
	}
}

// close sends CloseCommand at most once over the life of the link. It
// reports whether this call performed the close.
func (l *rendererLink) close() (bool, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false, nil
	}
	l.closed = true
	unsubscribe := l.unsubscribe
	l.unsubscribe = nil

	err := l.err
	if err == nil {
		if sendErr := l.sender.Send(CloseCommand{}); sendErr != nil {
			err = fmt.Errorf("canvas: send %s: %w", CmdClose, sendErr)
			l.log().Error("canvas: renderer lost", "command", CmdClose, "err", sendErr)
		}
	}
	switch {
	case l.err == nil && err != nil:
		l.err = err
	case l.err == nil:
		l.err = ErrContextClosed
	}
	l.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	l.log().Debug("canvas: context closed")
	return true, err
}
