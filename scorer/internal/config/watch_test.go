package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "guide:\n  low_certification_states: [FL]\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config) { reloaded <- cfg })
	}()

	// The watcher may not be registered yet, so keep rewriting until a
	// reload arrives.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case cfg := <-reloaded:
			states := cfg.Guide.States()
			if len(states) != 1 || states[0] != "NV" {
				t.Fatalf("reloaded states: got %v, want [NV]", states)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned error: %v", err)
			}
			return
		case <-ticker.C:
			writeFile(t, path, "guide:\n  low_certification_states: [NV]\n")
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatch_InvalidReloadKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "output: text\n")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	called := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(*Config) { called <- struct{}{} })
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "output: xml\n")

	if err := <-done; err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	select {
	case <-called:
		t.Error("onChange called for an invalid config")
	default:
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), func(*Config) {})
	if err == nil {
		t.Fatal("expected error watching a missing file, got nil")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatch_ReloadsAfterAtomicRenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "guide:\n  low_certification_states: [FL]\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 64)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config) { reloaded <- cfg })
	}()

	// saveAtomic writes a temp file and renames it over path, the way
	// vim and most IDEs save.
	saveAtomic := func(content string) {
		tmp := filepath.Join(dir, "config.yaml.tmp")
		writeFile(t, tmp, content)
		if err := os.Rename(tmp, path); err != nil {
			t.Fatalf("rename: %v", err)
		}
	}

	waitFor := func(want string, save func()) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case cfg := <-reloaded:
				if states := cfg.Guide.States(); len(states) == 1 && states[0] == want {
					return
				}
			case <-ticker.C:
				save()
			case <-deadline:
				t.Fatalf("timed out waiting for reload with state %s", want)
			}
		}
	}

	// Two rename saves in a row: the second only lands if the watch
	// survived the first.
	waitFor("NV", func() { saveAtomic("guide:\n  low_certification_states: [NV]\n") })
	waitFor("TX", func() { saveAtomic("guide:\n  low_certification_states: [TX]\n") })
	// A plain write after the renames is still seen.
	waitFor("OK", func() { writeFile(t, path, "guide:\n  low_certification_states: [OK]\n") })

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestIsReload(t *testing.T) {
	target := filepath.Join("etc", "scorer", "config.yaml")
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to target", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create of target", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"chmod of target", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"rename away from target", fsnotify.Event{Name: target, Op: fsnotify.Rename}, false},
		{"write to sibling", fsnotify.Event{Name: filepath.Join("etc", "scorer", "other.yaml"), Op: fsnotify.Write}, false},
		{"create of temp file", fsnotify.Event{Name: target + ".tmp", Op: fsnotify.Create}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isReload(tc.event, target); got != tc.want {
				t.Errorf("isReload(%v) = %v, want %v", tc.event, got, tc.want)
			}
		})
	}
}
