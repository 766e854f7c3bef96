//go:build unix

package instance

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquireAt_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.lock")

	first, err := AcquireAt(path)
	if err != nil {
		t.Fatalf("first AcquireAt() error = %v", err)
	}

	if _, err := AcquireAt(path); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second AcquireAt() error = %v, want ErrAlreadyRunning", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	again, err := AcquireAt(path)
	if err != nil {
		t.Fatalf("AcquireAt() after release error = %v", err)
	}
	again.Release()
}

func TestRelease_Twice(t *testing.T) {
	l, err := AcquireAt(filepath.Join(t.TempDir(), "clock.lock"))
	if err != nil {
		t.Fatalf("AcquireAt() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}

	var nilLock *Lock
	if err := nilLock.Release(); err != nil {
		t.Errorf("nil Release() error = %v", err)
	}
}

func TestAcquireAt_BadDirectory(t *testing.T) {
	_, err := AcquireAt(filepath.Join(t.TempDir(), "missing", "clock.lock"))
	if err == nil || errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("AcquireAt() error = %v, want open failure", err)
	}
}
