package config

import "errors"

var (
	// ErrInvalidFontSize is returned when the font size is not positive
	ErrInvalidFontSize = errors.New("font size must be positive")

	// ErrInvalidBlurRadius is returned when the shadow blur radius is negative
	ErrInvalidBlurRadius = errors.New("shadow blur radius must not be negative")

	// ErrInvalidOpacity is returned when opacity is not a finite number
	ErrInvalidOpacity = errors.New("opacity must be a finite number")

	// ErrInvalidFontWeight is returned for an unknown font weight
	ErrInvalidFontWeight = errors.New("unknown font weight")

	// ErrInvalidTheme is returned for an unknown theme mode, color source or adjustment
	ErrInvalidTheme = errors.New("unknown theme setting")

	// ErrInvalidPosition is returned for an unknown position anchor
	ErrInvalidPosition = errors.New("unknown position")

	// ErrUnknownKey is returned when getting or setting a key the config does not have
	ErrUnknownKey = errors.New("unknown config key")

	// ErrConfigDirCreation is returned when the config directory cannot be created
	ErrConfigDirCreation = errors.New("failed to create config directory")
)
