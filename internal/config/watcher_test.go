package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcher_ExternalEditTriggersReload(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Save(DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	changed := make(chan struct{}, 4)
	w, err := m.WatchWithDebounce(20*time.Millisecond, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	_ = m.Load()
	if err := os.WriteFile(m.Path(), []byte(`{"font_size": 33}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification for external edit")
	}

	if got := m.Load().FontSize; got != 33 {
		t.Errorf("FontSize after external edit = %d, want 33", got)
	}
}

func TestWatcher_IgnoresOwnSave(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Save(DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	changed := make(chan struct{}, 4)
	w, err := m.WatchWithDebounce(20*time.Millisecond, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	cfg := DefaultConfig()
	cfg.ShowSeconds = true
	if err := m.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case <-changed:
		t.Error("watcher reported the manager's own save")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	w, err := m.Watch(nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
