package canvas

import "errors"

var (
	// ErrRendererGone is returned when a command cannot be delivered because
	// the rendering worker has stopped receiving.
	ErrRendererGone = errors.New("canvas: renderer unreachable")

	// ErrContextClosed is reported by a context after Close.
	ErrContextClosed = errors.New("canvas: context closed")

	// ErrNilSurface is returned by NewContext when no surface is given.
	ErrNilSurface = errors.New("canvas: nil surface")
)
