package kernel

import "time"

// Clock abstracts time so validity windows and transition timestamps are testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

// Now returns the current UTC time truncated to microseconds, the precision PostgreSQL keeps.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
