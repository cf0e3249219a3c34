package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The form, the server and the exporters all derive "today" from it, so a
// pinned clock pins every reference date.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
