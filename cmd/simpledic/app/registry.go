// Package app is a small application wired by the simpledic container: a runner greeting
// someone with the greeter chosen by the settings.
package app

import (
	"github.com/a-peyrard/simpledic"
)

//go:generate go run github.com/a-peyrard/simpledic/cmd/generator
type Registry struct {
	simpledic.EmptyRegistry
}
