package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"studyplan/internal/modules/quicktrack/adapter/out"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	store := out.NewFileTimerStore(home)
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if err := store.Save(context.Background(), map[string]time.Time{"task-1": started}); err != nil {
		t.Fatalf("save: %v", err)
	}
	active, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(active) != 1 || !active["task-1"].Equal(started) {
		t.Fatalf("active = %v", active)
	}
}

func TestSaveEmptyRemovesDocument(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	store := out.NewFileTimerStore(home)
	path := filepath.Join(home, "quicktrack-timers.json")

	if err := store.Save(context.Background(), map[string]time.Time{"task-1": time.Now()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(context.Background(), map[string]time.Time{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("empty save left the document behind")
	}
	// Removing an already-absent document is fine too.
	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("save empty twice: %v", err)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := out.NewFileTimerStore(t.TempDir())
	active, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active = %v, want empty", active)
	}
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	path := filepath.Join(home, "quicktrack-timers.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := out.NewFileTimerStore(home)
	active, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active = %v, want empty", active)
	}
}
