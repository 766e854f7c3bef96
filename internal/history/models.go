package history

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/siegfried/desktopclock/internal/config"
)

// Where a revision came from
const (
	SourceSettings = "settings"
	SourceCLI      = "cli"
	SourceTray     = "tray"
	SourceRestore  = "restore"
	SourceExternal = "external"
)

// Revision is one committed configuration
type Revision struct {
	ID      string         `json:"id"`
	SavedAt time.Time      `json:"saved_at"`
	Source  string         `json:"source"`
	Config  *config.Config `json:"config"`
}

// ShortID is the first block of the revision id
func (r Revision) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}

// Age describes when the revision was saved relative to now, e.g.
// "3 minutes ago"
func (r Revision) Age(now time.Time) string {
	return humanize.RelTime(r.SavedAt, now, "ago", "from now")
}

// Summary is a one-line menu label
func (r Revision) Summary(now time.Time) string {
	return fmt.Sprintf("%s · %s (%s)", r.Age(now), r.Describe(), r.Source)
}

// Describe names the font and position of the revision's configuration
func (r Revision) Describe() string {
	c := r.Config
	if c == nil {
		return "?"
	}
	return fmt.Sprintf("%s %dpt, %s", c.FontFamily, c.FontSize, c.Position)
}
