package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewWatcher_dedupesDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "b.json"),
		"",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w.Files() != 2 {
		t.Errorf("Files() = %d, want 2", w.Files())
	}
	if len(w.dirs) != 1 {
		t.Errorf("dirs = %v, want one directory", w.dirs)
	}
}

func TestWatcher_DebouncesBurstIntoOneCall(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "scaler.json")
	other := filepath.Join(dir, "notes.txt")
	if err := writeFile(target, "{}"); err != nil {
		t.Fatal(err)
	}

	var calls [][]string
	var mu sync.Mutex
	onChange := func(paths []string) {
		mu.Lock()
		calls = append(calls, paths)
		mu.Unlock()
	}
	w, err := NewWatcher([]string{target}, onChange, WithDebounce(150*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 3; i++ {
		if err := writeFile(target, strings.Repeat("x", i+1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writeFile(other, "ignored"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(600 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("expected one debounced call, got %d: %v", len(calls), calls)
	}
	if len(calls[0]) != 1 || !strings.HasSuffix(calls[0][0], "scaler.json") {
		t.Errorf("changed paths = %v", calls[0])
	}
}

func TestWatcher_SeesReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "diabetes_qa.csv")
	if err := writeFile(target, "Pertanyaan,Jawaban\n"); err != nil {
		t.Fatal(err)
	}

	changed := make(chan []string, 4)
	w, err := NewWatcher([]string{target}, func(p []string) { changed <- p }, WithDebounce(100*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	tmp := filepath.Join(dir, "diabetes_qa.csv.tmp")
	if err := writeFile(tmp, "Pertanyaan,Jawaban\nA?,B\n"); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, target); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("rename into place was not reported")
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing", "model.json")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("expected error for missing directory")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{filepath.Join(dir, "a.csv")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
