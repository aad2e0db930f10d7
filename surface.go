package canvas

import "sync"

// Surface is the drawing target a context mirrors. The surface owns its
// pixel dimensions; a context only reads them.
type Surface interface {
	// Size returns the current size in pixels.
	Size() Size
}

// ResizeNotifier is implemented by surfaces that report size changes.
// A context bound to such a surface recreates its renderer buffer on every
// notification.
type ResizeNotifier interface {
	// OnResize registers fn to be called with the new size after each
	// change. The returned function removes the registration.
	OnResize(fn func(Size)) (cancel func())
}

// Element is a minimal Surface: a sized canvas element whose size can be
// changed by its owner.
type Element struct {
	mu        sync.Mutex
	size      Size
	nextID    int
	listeners map[int]func(Size)
}

var (
	_ Surface        = (*Element)(nil)
	_ ResizeNotifier = (*Element)(nil)
)

// NewElement creates an element of the given size.
func NewElement(size Size) *Element {
	return &Element{size: size, listeners: make(map[int]func(Size))}
}

// Size implements Surface.
func (e *Element) Size() Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.size
}

// SetSize changes the element size and notifies listeners. As with the
// width and height attributes of an HTML canvas, listeners are notified even
// when the size is unchanged.
func (e *Element) SetSize(size Size) {
	e.mu.Lock()
	e.size = size
	fns := make([]func(Size), 0, len(e.listeners))
	for id := range e.nextID {
		if fn, ok := e.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(size)
	}
}

// OnResize implements ResizeNotifier.
func (e *Element) OnResize(fn func(Size)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}
