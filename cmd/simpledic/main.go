// Command simpledic runs the demo application wired by the simpledic container.
//
// Usage:
//
//	simpledic [-config settings.yaml] [-env .env] run|describe
//
// Settings are read from SIMPLEDIC_* environment variables, taking precedence over the config
// file. The run command starts the runnable types listed in the settings, describe prints the
// state of the container as YAML.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/a-peyrard/simpledic/cmd/simpledic/app"
	"github.com/a-peyrard/simpledic/config"
	"github.com/a-peyrard/simpledic/option"
	"github.com/a-peyrard/simpledic/runner"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SIMPLEDIC"

var errUsage = errors.New("usage: simpledic [-config file] [-env file] run|describe")

func newLogger(out io.Writer, rawLevel string) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(rawLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", rawLevel, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &logger, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("simpledic", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.String("config", "", "settings file (yaml, json, toml...)")
	envFile := flags.String("env", ".env", "env file loaded before reading the environment, ignored if missing")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errUsage
	}

	opts := []option.Option[config.Options]{config.WithEnvPrefix(envPrefix), config.WithDotEnv(*envFile)}
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	settings, err := config.Load[app.Settings](opts...)
	if err != nil {
		return err
	}
	logger, err := newLogger(stderr, settings.Log.Level)
	if err != nil {
		return err
	}

	container, err := app.NewContainer(settings, logger)
	if err != nil {
		return fmt.Errorf("unable to wire the application:\n\t%w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close the container")
		}
	}()

	switch command := flags.Arg(0); command {
	case "run":
		logger.Debug().Msgf("here is what we have in store before running:\n%s", container.Describe())
		if err := runner.Run(ctx, container, settings.Run...); err != nil {
			return err
		}
		logger.Debug().Msgf("here is what we have in store at the end:\n%s", container.Describe())
		return nil

	case "describe":
		encoder := yaml.NewEncoder(stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(container.Snapshot()); err != nil {
			return err
		}
		return encoder.Close()

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func main() {
	ctx, cancel := runner.WithSyscallKillableContext(context.Background())
	defer cancel()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "simpledic: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
