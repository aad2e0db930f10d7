// Package canvas provides an asynchronous 2D drawing context.
//
// # Overview
//
// A [Context] is a thin handle in the style of the HTML canvas 2D API. It
// keeps the drawing state (line width, alpha, composite operation, ...) in a
// save/restore stack and turns every drawing call into a [Command] that is
// sent to a rendering worker over a FIFO channel. The worker owns the pixel
// buffer; the context never touches pixels.
//
// # Quick Start
//
//	el := canvas.NewElement(canvas.Size{Width: 320, Height: 240})
//	dc, err := canvas.NewContext(el)
//	if err != nil {
//		return err
//	}
//	defer dc.Close()
//
//	dc.SetFillStyle(canvas.Hex("#3070ff"))
//	dc.FillRect(10, 10, 100, 50)
//
//	dc.Save()
//	dc.SetLineWidth(4)
//	dc.SetLineJoin(canvas.LineJoinRound)
//	dc.StrokeRect(20, 80, 120, 60)
//	dc.Restore()
//
//	img, err := dc.Snapshot(context.Background())
//
// # Renderers
//
// By default each context starts its own [PaintWorker], a software
// rasterizer running on a dedicated goroutine. Use [WithRenderer] to bind a
// context to a different worker; the only contract is [RendererStarter]:
// given the initial surface size, return a [Sender].
//
// # Lifecycle
//
// Drawing calls never block and never return errors. If the worker goes
// away, the context records the failure, logs it and refuses further work;
// [Context.Err] reports the cause. [Context.Close] sends exactly one
// [CloseCommand], no matter how many times it is called. A context that is
// dropped without Close is closed by a runtime cleanup.
//
// # Coordinate System
//
// Origin at the top-left, X to the right, Y down. Coordinates are accepted
// as float64 and narrowed to float32 before they are placed in a command.
package canvas
