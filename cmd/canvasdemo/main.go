// Command canvasdemo renders a TOML scene through an asynchronous canvas
// context and writes the result as a PNG.
//
// Usage:
//
//	canvasdemo -s scene.toml -o out.png
//	canvasdemo -s scene.toml -o out.png --watch -vv
//
// With --watch the scene is re-rendered every time the file changes. A
// changed canvas size reaches the renderer through the element's resize
// notification, the same way a page resizing its canvas would.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gogpu/canvas"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Scene    string        `short:"s" long:"scene" description:"Scene file (TOML)" required:"true"`
	Output   string        `short:"o" long:"output" description:"Output PNG file" default:"canvas.png"`
	Watch    bool          `short:"w" long:"watch" description:"Re-render when the scene file changes"`
	Debounce time.Duration `long:"debounce" description:"Quiet period before a change is rendered" default:"250ms"`
	Timeout  time.Duration `long:"timeout" description:"How long to wait for the renderer" default:"10s"`
	Verbose  []bool        `short:"v" long:"verbose" description:"Log more (-v info, -vv debug)"`
}

func parseCmd(args []string) (options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return opts, err
	}
	abs, err := filepath.Abs(opts.Scene)
	if err != nil {
		return opts, err
	}
	opts.Scene = abs
	return opts, nil
}

func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	opts, err := parseCmd(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, newLogger(len(opts.Verbose))); err != nil {
		fmt.Fprintln(os.Stderr, "canvasdemo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *slog.Logger) error {
	canvas.SetLogger(log)

	scene, err := LoadScene(opts.Scene)
	if err != nil {
		return err
	}

	el := canvas.NewElement(scene.Size())
	dc, err := canvas.NewContext(el)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()

	r := &renderer{dc: dc, el: el, output: opts.Output, timeout: opts.Timeout, log: log}
	if err := r.render(ctx, scene); err != nil {
		return err
	}
	if !opts.Watch {
		return dc.Close()
	}

	sw, err := newSceneWatcher(opts.Scene, opts.Debounce, func() {
		r.reload(ctx, opts.Scene)
	}, func(err error) {
		log.Error("watch failed", "err", err)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", opts.Scene, err)
	}
	log.Info("watching scene", "path", opts.Scene)
	sw.Run(ctx)
	return dc.Close()
}

// renderer plays scenes on one long-lived context.
type renderer struct {
	dc      *canvas.Context
	el      *canvas.Element
	output  string
	timeout time.Duration
	log     *slog.Logger
}

// reload renders the scene at path again. A broken scene is reported and
// the previous image is kept.
func (r *renderer) reload(ctx context.Context, path string) {
	scene, err := LoadScene(path)
	if err != nil {
		r.log.Error("scene not reloaded", "err", err)
		return
	}
	if err := r.render(ctx, scene); err != nil {
		r.log.Error("render failed", "err", err)
	}
}

func (r *renderer) render(ctx context.Context, scene *Scene) error {
	start := time.Now()
	scene.Play(r.dc, r.el)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	img, err := r.dc.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := writePNG(r.output, img); err != nil {
		return err
	}
	r.log.Info("rendered",
		"output", r.output,
		"width", img.Rect.Dx(),
		"height", img.Rect.Dy(),
		"ops", len(scene.Ops),
		"elapsed", time.Since(start))
	return nil
}

// writePNG replaces path atomically so watchers of the output never see a
// partial file.
func writePNG(path string, img *image.RGBA) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".canvasdemo-*.png")
	if err != nil {
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
