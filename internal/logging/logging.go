// Package logging points the standard logger at the terminal when there is
// one and at a log file otherwise.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

// FileName is the log file created in the config directory
const FileName = "desktopclock.log"

// Interactive reports whether fd is a terminal
func Interactive(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Setup configures the standard logger. With a terminal on stderr it logs
// there; otherwise it appends to dir/FileName. The returned closer releases
// the file and is never nil.
func Setup(dir string) (io.Closer, error) {
	if Interactive(os.Stderr.Fd()) {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
		return io.NopCloser(nil), nil
	}
	return SetupFile(filepath.Join(dir, FileName))
}

// SetupFile sends the standard logger to path
func SetupFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return io.NopCloser(nil), fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
