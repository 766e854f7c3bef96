//go:build !darwin && !linux && !windows

package startup

// DefaultEntry has no implementation here
func DefaultEntry() (Entry, error) {
	return nil, ErrUnsupported
}
