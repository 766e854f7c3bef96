package theme

import "strconv"

// accentByIndex maps the AppleAccentColor preference to the system palette
var accentByIndex = map[int]Color{
	-1: {A: 0xFF, R: 142, G: 142, B: 147}, // graphite
	0:  {A: 0xFF, R: 255, G: 59, B: 48},   // red
	1:  {A: 0xFF, R: 255, G: 149, B: 0},   // orange
	2:  {A: 0xFF, R: 255, G: 204, B: 0},   // yellow
	3:  {A: 0xFF, R: 52, G: 199, B: 89},   // green
	4:  {A: 0xFF, R: 0, G: 122, B: 255},   // blue
	5:  {A: 0xFF, R: 175, G: 82, B: 222},  // purple
	6:  {A: 0xFF, R: 255, G: 45, B: 85},   // pink
}

type macSystem struct{}

// Detect returns the System for the running OS
func Detect() System {
	return macSystem{}
}

func (macSystem) IsDark() bool {
	v, ok := readSetting("defaults", "read", "-g", "AppleInterfaceStyle")
	return ok && v == "Dark"
}

func (macSystem) Accent() Color {
	v, ok := readSetting("defaults", "read", "-g", "AppleAccentColor")
	if !ok {
		// Key is absent for the default multicolor setting, which is blue
		return accentByIndex[4]
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return Fallback.AccentColor
	}
	if c, ok := accentByIndex[i]; ok {
		return c
	}
	return Fallback.AccentColor
}
