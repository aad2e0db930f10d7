package canvas

import "log/slog"

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Default: a private PaintWorker per context
//	dc, err := canvas.NewContext(el)
//
//	// Custom renderer (dependency injection)
//	dc, err := canvas.NewContext(el, canvas.WithRenderer(start))
type ContextOption func(*contextOptions)

type contextOptions struct {
	start  RendererStarter
	logger *slog.Logger
}

func defaultOptions() contextOptions {
	return contextOptions{
		start:  StartPaintWorker,
		logger: nil, // package logger, resolved at log time
	}
}

// WithRenderer sets the function used to start the context's renderer.
// A nil starter keeps the default.
func WithRenderer(start RendererStarter) ContextOption {
	return func(o *contextOptions) {
		if start != nil {
			o.start = start
		}
	}
}

// WithLogger sets a logger for this context only, overriding the package
// logger configured with SetLogger.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}
