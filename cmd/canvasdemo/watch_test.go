package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSceneWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte("width = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changes := make(chan struct{}, 8)
	sw, err := newSceneWatcher(path, 100*time.Millisecond, func() {
		changes <- struct{}{}
	}, func(err error) {
		t.Errorf("watch error: %v", err)
	})
	if err != nil {
		t.Fatalf("newSceneWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sw.Run(ctx)
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		data := []byte("width = " + string(rune('2'+i)) + "\n")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changes:
		t.Error("burst of writes reported more than once")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSceneWatcherMissingDirectory(t *testing.T) {
	_, err := newSceneWatcher(filepath.Join(t.TempDir(), "missing", "scene.toml"), 0, func() {}, nil)
	if err == nil {
		t.Error("newSceneWatcher() on a missing directory succeeded")
	}
}
