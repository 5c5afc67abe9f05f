package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// HelloRunner greets someone a few times, then exits.
type HelloRunner struct {
	greeter  Greeter
	settings *HelloSettings
	logger   *zerolog.Logger
}

// NewHelloRunner creates the runner greeting Hello.Name, Hello.Count times.
//
// @component
func NewHelloRunner(
	greeter Greeter,
	settings *Settings,
	logger *zerolog.Logger, // @inject optional=true
) *HelloRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &HelloRunner{
		greeter:  greeter,
		settings: settings.Hello,
		logger:   logger,
	}
}

func (r *HelloRunner) Run(ctx context.Context) error {
	for i := 0; i < r.settings.Count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				r.logger.Info().Msg("context cancelled, exiting early")
				return ctx.Err()
			case <-time.After(r.settings.Interval):
			}
		}
		r.logger.Info().Int("round", i+1).Msg(r.greeter.Greet(r.settings.Name))
	}
	r.logger.Debug().Msg("done greeting, exiting now")

	return nil
}
