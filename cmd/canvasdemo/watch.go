package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is used when the watcher is given a non-positive interval.
const defaultDebounce = 250 * time.Millisecond

// sceneWatcher calls onChange after the scene file has been written and
// then left alone for the debounce interval.
type sceneWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	onError  func(error)
}

// newSceneWatcher watches the directory holding path rather than the file,
// so editors that save by renaming a temporary file are still seen.
func newSceneWatcher(path string, debounce time.Duration, onChange func(), onError func(error)) (*sceneWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &sceneWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
	}, nil
}

// Run handles events until ctx is done, then closes the watcher.
func (sw *sceneWatcher) Run(ctx context.Context) {
	defer sw.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.relevant(ev) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(sw.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			sw.onChange()

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			if sw.onError != nil {
				sw.onError(err)
			}
		}
	}
}

func (sw *sceneWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	return err == nil && name == sw.path
}
