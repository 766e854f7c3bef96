package theme

import "golang.org/x/sys/windows/registry"

type windowsSystem struct{}

// Detect returns the System for the running OS
func Detect() System {
	return windowsSystem{}
}

func (windowsSystem) IsDark() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER,
		`Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("AppsUseLightTheme")
	return err == nil && v == 0
}

func (windowsSystem) Accent() Color {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Software\Microsoft\Windows\DWM`, registry.QUERY_VALUE)
	if err != nil {
		return Fallback.AccentColor
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("ColorizationColor")
	if err != nil {
		return Fallback.AccentColor
	}
	// Stored as 0xAARRGGBB; the alpha is a blur intensity, not transparency
	return Color{A: 0xFF, R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}
