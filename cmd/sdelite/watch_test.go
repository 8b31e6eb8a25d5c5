package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSourceChange(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write jsonl", fsnotify.Event{Name: "/in/types.jsonl", Op: fsnotify.Write}, true},
		{"create jsonl", fsnotify.Event{Name: "/in/types.jsonl", Op: fsnotify.Create}, true},
		{"remove jsonl", fsnotify.Event{Name: "/in/types.jsonl", Op: fsnotify.Remove}, true},
		{"chmod jsonl", fsnotify.Event{Name: "/in/types.jsonl", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/in/notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSourceChange(tt.ev))
		})
	}
}

func TestWatchDir_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 10)
	done := make(chan error, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		done <- watchDir(ctx, dir, 50*time.Millisecond, logger, func(context.Context) error {
			runs <- struct{}{}
			return nil
		})
	}()

	waitRun := func(msg string) {
		t.Helper()
		select {
		case <-runs:
		case <-time.After(5 * time.Second):
			t.Fatal(msg)
		}
	}
	waitRun("initial run did not happen")

	// The watcher is registered right after the initial run; give it a moment.
	time.Sleep(100 * time.Millisecond)

	// A burst of writes collapses into one run.
	path := filepath.Join(dir, "types.jsonl")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"_key": 1}`+"\n"), 0o644))
	}
	waitRun("change did not trigger a run")

	select {
	case <-runs:
		t.Fatal("burst of writes triggered more than one run")
	case <-time.After(200 * time.Millisecond):
	}

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case <-runs:
		t.Fatal("non-jsonl change triggered a run")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchDir did not stop on cancel")
	}
}

func TestWatchDir_MissingDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := watchDir(context.Background(), filepath.Join(t.TempDir(), "nope"), time.Millisecond, logger,
		func(context.Context) error { return nil })
	assert.Error(t, err)
}
