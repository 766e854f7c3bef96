//go:build linux

package startup

import (
	"os"
	"path/filepath"
)

// DefaultEntry is an XDG autostart file under the user config directory
func DefaultEntry() (Entry, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return FileEntry{
		Path:   filepath.Join(dir, "autostart", "desktopclock.desktop"),
		Render: DesktopEntry,
	}, nil
}
