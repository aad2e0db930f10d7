package canvas

// RendererStarter starts (or binds to) a rendering worker sized to the
// initial surface and returns the endpoint commands are sent on. It must not
// wait for the worker beyond making the endpoint available.
//
// StartPaintWorker is the default.
type RendererStarter func(size Size) (*Sender, error)
