package clock

import "time"

// Clock is the source of game timestamps and durations
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC so stored games and summaries
// compare the same across hosts
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
