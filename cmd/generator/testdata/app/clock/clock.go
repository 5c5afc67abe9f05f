package clock

import "time"

// Clock gives the time.
//
// @interface
type Clock interface {
	Now() time.Time
}

type System struct{}

// NewSystem is the wall clock.
//
// @component id="clock.system"
func NewSystem() *System {
	return &System{}
}

func (System) Now() time.Time {
	return time.Now()
}
