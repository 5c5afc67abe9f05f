package app

import (
	"errors"

	"github.com/a-peyrard/simpledic"
	"github.com/rs/zerolog"
)

// NewContainer describes the components of the application and returns the container building
// them. The settings and the logger are handed out as they are.
func NewContainer(settings *Settings, logger *zerolog.Logger) (*simpledic.Container, error) {
	reg := simpledic.NewRegistry()
	if err := errors.Join(
		Registry{}.Describe(reg),
		simpledic.DescribeStruct[Settings](reg),
		simpledic.DescribeStruct[zerolog.Logger](reg),
	); err != nil {
		return nil, err
	}

	container := simpledic.New(simpledic.WithRegistry(reg), simpledic.WithLogger(logger))
	if err := errors.Join(
		container.AddFactory(func() *Settings { return settings }),
		container.AddFactory(func() *zerolog.Logger { return logger }),
		container.AddTypeMappings(settings.Mappings),
	); err != nil {
		_ = container.Close()
		return nil, err
	}

	return container, nil
}
