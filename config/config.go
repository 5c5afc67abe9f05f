// Package config loads typed settings from environment variables, an optional config file
// and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/a-peyrard/simpledic/fn"
	"github.com/a-peyrard/simpledic/option"
	"github.com/a-peyrard/simpledic/reflectutils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix     string
		configFile string
		dotEnv     []string
	}

	// WithDefault is implemented by settings structs completing themselves once loaded.
	WithDefault interface {
		ApplyDefault()
	}
)

var withDefaultType = reflect.TypeOf((*WithDefault)(nil)).Elem()

// WithEnvPrefix sets the prefix of the environment variables, e.g. APP for APP_LOG_LEVEL.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithConfigFile reads settings from a file (yaml, toml, json...), environment variables take precedence.
func WithConfigFile(path string) option.Option[Options] {
	return func(opts *Options) {
		opts.configFile = path
	}
}

// WithDotEnv loads .env files into the environment before reading it. Missing files are ignored,
// variables already set are not overridden.
func WithDotEnv(files ...string) option.Option[Options] {
	return func(opts *Options) {
		if len(files) == 0 {
			files = []string{".env"}
		}
		opts.dotEnv = append(opts.dotEnv, files...)
	}
}

// Load builds a T from the configured sources. Nil nested struct pointers are allocated, and
// every struct implementing WithDefault gets its defaults applied.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	for _, file := range options.dotEnv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to load env file %s:\n\t%w", file, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s:\n\t%w", options.configFile, err)
		}
	}

	var vT T
	bindEnvs(v, options.prefix, reflect.TypeOf(vT))

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	callApplyDefault := func(val reflect.Value, typ reflect.Type, _ []string) {
		if !typ.Implements(withDefaultType) || !val.IsValid() {
			return
		}
		if val.Kind() == reflect.Pointer && val.IsNil() {
			return
		}
		val.Interface().(WithDefault).ApplyDefault()
	}
	reflectutils.WalkStruct(
		&vT,
		fn.AllTriConsumer(
			reflectutils.CreateNilStructs,
			callApplyDefault,
		),
	)

	return &vT, nil
}
