package greeter

import (
	"example.com/app/clock"
)

type (
	Prefix struct {
		Value string
	}

	PoliteGreeter struct {
		clock  clock.Clock
		prefix *Prefix
	}
)

// NewPoliteGreeter builds a greeter
// saying hello politely.
//
// @component implements="app.Greeter,app.Named" unknown=1
func NewPoliteGreeter(
	clock clock.Clock,
	prefix *Prefix, // @inject optional=true
) *PoliteGreeter {
	return &PoliteGreeter{clock: clock, prefix: prefix}
}

func (g *PoliteGreeter) Greet(name string) string {
	return "Good day " + name
}

func (g *PoliteGreeter) Name() string {
	return "polite"
}

// NotAComponent mentions @component in a sentence only.
func NotAComponent() {}
