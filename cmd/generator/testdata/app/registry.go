package app

import (
	"github.com/a-peyrard/simpledic"
)

//go:generate go run github.com/a-peyrard/simpledic/cmd/generator
type Registry struct {
	simpledic.EmptyRegistry
}

// Named is implemented by components exposing a name.
//
// @interface id="app.Named"
type Named interface {
	Name() string
}

// NewApp wires the application.
//
// @component
func NewApp(greeter Greeter) *App {
	return &App{greeter: greeter}
}

type (
	// Greeter greets people.
	//
	// @interface
	Greeter interface {
		Greet(name string) string
	}

	App struct {
		greeter Greeter
	}
)
