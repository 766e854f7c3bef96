package settings

import (
	"context"
	"fmt"

	"github.com/siegfried/desktopclock/internal/clock"
)

// ZoneSource lists selectable time zones
type ZoneSource interface {
	List(ctx context.Context) ([]string, clock.Origin, error)
}

// ZoneChoices puts the local sentinel first, followed by zones
func ZoneChoices(zones []string) []string {
	out := make([]string, 0, len(zones)+1)
	out = append(out, clock.LocalZone)
	for _, z := range zones {
		if z != clock.LocalZone {
			out = append(out, z)
		}
	}
	return out
}

// RefreshZones fetches the zone list and returns the choices with a status
// line for the view. A network failure is not an error: the system list is
// used and the status says so.
func RefreshZones(ctx context.Context, src ZoneSource) (choices []string, status string) {
	ctx, cancel := context.WithTimeout(ctx, clock.FetchTimeout)
	defer cancel()

	zones, origin, err := src.List(ctx)
	choices = ZoneChoices(zones)

	switch {
	case err != nil:
		status = fmt.Sprintf("Network unavailable, loaded %d system time zones", len(zones))
	case origin == clock.OriginNetwork:
		status = fmt.Sprintf("Loaded %d time zones from worldtimeapi.org", len(zones))
	default:
		status = fmt.Sprintf("Loaded %d system time zones", len(zones))
	}
	return choices, status
}
