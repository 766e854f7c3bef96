//go:build darwin

package startup

import (
	"os"
	"path/filepath"
)

// DefaultEntry is a LaunchAgent in ~/Library/LaunchAgents
func DefaultEntry() (Entry, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return FileEntry{
		Path:   filepath.Join(home, "Library", "LaunchAgents", Label+".plist"),
		Render: LaunchAgentPlist,
	}, nil
}
