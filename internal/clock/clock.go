package clock

import "time"

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// System reads the host clock.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Min returns the earlier of t and the clock's current time.
func Min(c Clock, t time.Time) time.Time {
	if now := c.Now(); now.Before(t) {
		return now
	}
	return t
}
