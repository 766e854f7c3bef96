//go:build !darwin && !linux && !windows

package theme

// Detect returns the System for the running OS
func Detect() System {
	return Fallback
}
