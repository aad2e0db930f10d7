package canvas

import (
	"errors"
	"log/slog"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.start == nil {
		t.Fatal("default starter is nil")
	}
	if o.logger != nil {
		t.Error("default logger should be nil so the package logger is used")
	}
}

func TestWithRenderer(t *testing.T) {
	var called Size
	want := errors.New("no renderer")
	start := func(size Size) (*Sender, error) {
		called = size
		return nil, want
	}

	_, err := NewContext(NewElement(Size{Width: 7, Height: 3}), WithRenderer(start))
	if !errors.Is(err, want) {
		t.Fatalf("NewContext() error = %v, want %v", err, want)
	}
	if called != (Size{Width: 7, Height: 3}) {
		t.Errorf("starter called with %v, want 7x3", called)
	}
}

func TestWithRendererNilKeepsDefault(t *testing.T) {
	o := defaultOptions()
	WithRenderer(nil)(&o)
	if o.start == nil {
		t.Error("WithRenderer(nil) cleared the starter")
	}
}

func TestWithLogger(t *testing.T) {
	l := slog.Default()
	o := defaultOptions()
	WithLogger(l)(&o)
	if o.logger != l {
		t.Error("WithLogger did not set the logger")
	}

	link := &rendererLink{logger: o.logger}
	if link.log() != l {
		t.Error("link does not prefer the context logger")
	}
	link.logger = nil
	if link.log() != Logger() {
		t.Error("link does not fall back to the package logger")
	}
}

func TestOptionsApplyInOrder(t *testing.T) {
	first := slog.Default()
	second := slog.New(nopHandler{})
	o := defaultOptions()
	for _, opt := range []ContextOption{WithLogger(first), WithLogger(second)} {
		opt(&o)
	}
	if o.logger != second {
		t.Error("later option did not win")
	}
}
