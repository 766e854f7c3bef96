package theme

// System reports the operating system's appearance
type System interface {
	// IsDark reports whether apps are asked to use a dark appearance
	IsDark() bool
	// Accent returns the OS highlight color
	Accent() Color
}

// Static is a fixed System, used headless and in tests
type Static struct {
	Dark        bool
	AccentColor Color
}

// IsDark implements System
func (s Static) IsDark() bool { return s.Dark }

// Accent implements System
func (s Static) Accent() Color { return s.AccentColor }

// Fallback is what every probe reports when the OS cannot be queried
var Fallback = Static{Dark: false, AccentColor: DodgerBlue}
