// Package instance keeps a single clock running per user session.
package instance

import "errors"

// DefaultName identifies the clock's lock
const DefaultName = "desktopclock"

// ErrAlreadyRunning means another process holds the lock
var ErrAlreadyRunning = errors.New("another instance is already running")
