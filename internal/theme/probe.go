//go:build darwin || linux

package theme

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const probeTimeout = 2 * time.Second

// readSetting runs a settings command and returns its trimmed output
func readSetting(name string, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", false
	}
	return strings.Trim(strings.TrimSpace(string(out)), "'\""), true
}
