// Package clock formats the overlay's time and date labels and lists the
// time zones a user can pick from.
package clock

import (
	"sync"
	"time"

	"github.com/ncruces/go-strftime"
)

// LocalZone is the zone id that bypasses lookup and uses the machine's zone
const LocalZone = "Local"

// Label patterns in strftime syntax
const (
	TimePattern        = "%H:%M"
	TimePatternSeconds = "%H:%M:%S"
	DefaultDatePattern = "%m/%d %a"
)

var locations sync.Map // zone id -> *time.Location

// Location resolves a zone id. ok is false when the id could not be
// resolved and local time is used instead.
func Location(id string) (loc *time.Location, ok bool) {
	if id == "" || id == LocalZone {
		return time.Local, true
	}
	if v, found := locations.Load(id); found {
		return v.(*time.Location), true
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return time.Local, false
	}
	locations.Store(id, loc)
	return loc, true
}

// TimeIn returns now in the zone named id, falling back to local time for
// the "Local" sentinel and for ids that do not resolve.
func TimeIn(id string, now time.Time) time.Time {
	loc, _ := Location(id)
	return now.In(loc)
}

// FormatTime renders HH:mm or HH:mm:ss
func FormatTime(t time.Time, showSeconds bool) string {
	if showSeconds {
		return strftime.Format(TimePatternSeconds, t)
	}
	return strftime.Format(TimePattern, t)
}

// FormatDate renders t with a strftime pattern; an empty pattern uses the default
func FormatDate(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultDatePattern
	}
	return strftime.Format(pattern, t)
}

// Labels computes both overlay labels for one tick. dateText is empty when
// the date is hidden.
func Labels(now time.Time, zone string, showSeconds, showDate bool, datePattern string) (timeText, dateText string) {
	t := TimeIn(zone, now)
	timeText = FormatTime(t, showSeconds)
	if showDate {
		dateText = FormatDate(t, datePattern)
	}
	return timeText, dateText
}
