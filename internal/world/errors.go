package world

import "errors"

var (
	// ErrInvalidInterval is returned when an interval divisor is not positive.
	ErrInvalidInterval = errors.New("interval must be positive")
	// ErrInvalidCount is returned when a generator is asked for a non-positive count.
	ErrInvalidCount = errors.New("shot count must be positive")
	// ErrUnknownSurface is returned when no display surface is bound to an id.
	ErrUnknownSurface = errors.New("unknown display surface")
	// ErrNotRunning is returned when ticking an instance that is not running.
	ErrNotRunning = errors.New("instance is not running")
	// ErrInstanceClosed is returned when spawning into a torn down instance.
	ErrInstanceClosed = errors.New("instance has been torn down")
)
