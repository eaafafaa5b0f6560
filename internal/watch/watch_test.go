package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")
	other := filepath.Join(dir, "other.txt")

	changed := make(chan string, 8)
	fw, err := New(func(p string) { changed <- p }, 100*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = fw.Close() })

	if err := fw.Add(target); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := os.WriteFile(target, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case p := <-changed:
		want, _ := filepath.Abs(target)
		if p != want {
			t.Errorf("changed = %q, want %q", p, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst collapses; the unrelated file never reports.
	select {
	case p := <-changed:
		t.Errorf("unexpected second notification for %q", p)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestRemoveStopsNotifications(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "events.db")

	changed := make(chan string, 1)
	fw, err := New(func(p string) { changed <- p }, 10*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = fw.Close() })

	if err := fw.Add(target); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := fw.Remove(target); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Errorf("notification after Remove: %q", p)
	case <-time.After(150 * time.Millisecond):
	}
}
