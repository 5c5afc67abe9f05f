package app

import "fmt"

type (
	// Greeter builds the greeting of someone.
	//
	// @interface
	Greeter interface {
		Greet(name string) string
	}

	PoliteGreeter struct {
		clock Clock
	}

	CasualGreeter struct{}
)

// NewPoliteGreeter greets depending on the time of the day.
//
// @component
func NewPoliteGreeter(clock Clock) *PoliteGreeter {
	return &PoliteGreeter{clock: clock}
}

func (g *PoliteGreeter) Greet(name string) string {
	switch hour := g.clock.Now().Hour(); {
	case hour < 12:
		return fmt.Sprintf("Good morning, %s.", name)
	case hour < 18:
		return fmt.Sprintf("Good afternoon, %s.", name)
	default:
		return fmt.Sprintf("Good evening, %s.", name)
	}
}

// NewCasualGreeter greets friends.
//
// @component
func NewCasualGreeter() *CasualGreeter {
	return &CasualGreeter{}
}

func (*CasualGreeter) Greet(name string) string {
	return fmt.Sprintf("Hey %s!", name)
}
