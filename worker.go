// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"context"
	"errors"
	"log/slog"
)

// PaintWorker is the software renderer. It owns a Pixmap and executes
// commands from its Receiver on a single goroutine until it receives
// CloseCommand.
type PaintWorker struct {
	rx     *Receiver
	pixmap *Pixmap
	done   chan struct{}
}

// Ensure StartPaintWorker satisfies the renderer contract.
var _ RendererStarter = StartPaintWorker

// StartPaintWorker starts a PaintWorker of the given size on a new
// goroutine and returns its endpoint. It is the default RendererStarter.
func StartPaintWorker(size Size) (*Sender, error) {
	tx, w := NewPaintWorker(size)
	go w.Run()
	return tx, nil
}

// NewPaintWorker creates a worker and its endpoint without starting it.
// The caller runs the worker with Run.
func NewPaintWorker(size Size) (*Sender, *PaintWorker) {
	tx, rx := NewChannel()
	return tx, &PaintWorker{
		rx:     rx,
		pixmap: NewPixmap(size),
		done:   make(chan struct{}),
	}
}

// Done returns a channel that is closed when Run returns.
func (w *PaintWorker) Done() <-chan struct{} {
	return w.done
}

// Run executes commands until CloseCommand. On return the receiver is
// closed, so later sends fail with ErrRendererGone.
func (w *PaintWorker) Run() {
	defer close(w.done)
	defer w.rx.Close()

	log := Logger()
	log.Debug("canvas: paint worker started", "width", w.pixmap.Width(), "height", w.pixmap.Height())

	for {
		cmd, err := w.rx.Recv(context.Background())
		if err != nil {
			if !errors.Is(err, ErrRendererGone) {
				log.Error("canvas: paint worker receive failed", "err", err)
			}
			return
		}
		if !w.execute(cmd, log) {
			log.Debug("canvas: paint worker stopped")
			return
		}
	}
}

// execute runs one command and reports whether the loop should continue.
func (w *PaintWorker) execute(cmd Command, log *slog.Logger) bool {
	clip := w.pixmap.Bounds()

	switch c := cmd.(type) {
	case FillRectCommand:
		cov := coverage(fillContours(c.Rect), clip)
		w.pixmap.paint(cov, c.Style.FillColor, c.Style.GlobalAlpha, c.Style.Composite)

	case StrokeRectCommand:
		cov := coverage(strokeContours(c.Rect, c.Style), clip)
		w.pixmap.paint(cov, c.Style.StrokeColor, c.Style.GlobalAlpha, c.Style.Composite)

	case ClearRectCommand:
		w.pixmap.clear(coverage(fillContours(c.Rect), clip))

	case RecreateCommand:
		w.pixmap = NewPixmap(c.Size)
		log.Debug("canvas: paint worker buffer recreated", "width", w.pixmap.Width(), "height", w.pixmap.Height())

	case SnapshotCommand:
		select {
		case c.Reply <- w.pixmap.ToImage():
		default:
			log.Warn("canvas: snapshot reply channel full, dropping snapshot")
		}

	case CloseCommand:
		w.pixmap = nil
		return false
	}
	return true
}
