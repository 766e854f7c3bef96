package clock

import (
	"testing"
	"time"
	_ "time/tzdata"
)

var noon = time.Date(2026, 10, 18, 12, 5, 9, 0, time.UTC)

func TestFormatTime(t *testing.T) {
	if got := FormatTime(noon, false); got != "12:05" {
		t.Errorf("FormatTime(no seconds) = %q, want 12:05", got)
	}
	if got := FormatTime(noon, true); got != "12:05:09" {
		t.Errorf("FormatTime(seconds) = %q, want 12:05:09", got)
	}

	early := time.Date(2026, 1, 2, 7, 3, 4, 0, time.UTC)
	if got := FormatTime(early, true); got != "07:03:04" {
		t.Errorf("FormatTime(early) = %q, want zero padded 07:03:04", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(noon, ""); got != "10/18 Sun" {
		t.Errorf("FormatDate(default) = %q, want 10/18 Sun", got)
	}
	if got := FormatDate(noon, "%Y-%m-%d"); got != "2026-10-18" {
		t.Errorf("FormatDate(iso) = %q", got)
	}
}

func TestTimeIn(t *testing.T) {
	tokyo := TimeIn("Asia/Tokyo", noon)
	if tokyo.Hour() != 21 {
		t.Errorf("Tokyo hour = %d, want 21", tokyo.Hour())
	}
	if !tokyo.Equal(noon) {
		t.Error("TimeIn changed the instant")
	}

	if got := TimeIn(LocalZone, noon); got.Location() != time.Local {
		t.Errorf("Local sentinel location = %v", got.Location())
	}
}

func TestTimeIn_UnknownZoneFallsBackToLocal(t *testing.T) {
	got := TimeIn("Mars/Olympus_Mons", noon)
	if got.Location() != time.Local {
		t.Errorf("location = %v, want Local", got.Location())
	}

	if _, ok := Location("Mars/Olympus_Mons"); ok {
		t.Error("Location reported ok for an unknown zone")
	}
	if _, ok := Location(""); !ok {
		t.Error("empty zone should resolve to local")
	}
}

func TestLabels(t *testing.T) {
	timeText, dateText := Labels(noon, "UTC", false, false, "")
	if timeText != "12:05" || dateText != "" {
		t.Errorf("Labels(hidden date) = %q, %q", timeText, dateText)
	}

	timeText, dateText = Labels(noon, "UTC", true, true, "%d.%m.")
	if timeText != "12:05:09" || dateText != "18.10." {
		t.Errorf("Labels(date) = %q, %q", timeText, dateText)
	}

	want := FormatTime(noon.In(time.Local), false)
	if timeText, _ := Labels(noon, "Nowhere/Special", false, false, ""); timeText != want {
		t.Errorf("unknown zone label = %q, want local %q", timeText, want)
	}
}
