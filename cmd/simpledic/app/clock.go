package app

import "time"

// Clock gives the current time.
//
// @interface
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

// NewSystemClock is the wall clock.
//
// @component
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (*SystemClock) Now() time.Time {
	return time.Now()
}
