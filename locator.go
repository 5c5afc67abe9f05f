package simpledic

import (
	"fmt"

	"github.com/a-peyrard/simpledic/option"
)

type (
	// Locator is the string keyed lookup view of a container.
	Locator interface {
		// Get returns the entry for id, ErrNotFound when id is not a known type.
		Get(id string) (any, error)
		// Has reports if an entry can be obtained for id.
		Has(id string) bool
	}

	// Setup is the configuration view of a container.
	Setup interface {
		AddFactory(factory any, opts ...option.Option[FactoryOptions]) error
		AddTypeMapping(forType, to TypeID, opts ...option.Option[MappingOptions]) error
	}

	// Backend is what a LocatorAdapter delegates to, a Container or a SyncContainer.
	Backend interface {
		Resolver
		Setup
	}

	// LocatorAdapter exposes a container through Locator and Setup.
	LocatorAdapter struct {
		container Backend
	}
)

var (
	_ Locator = (*LocatorAdapter)(nil)
	_ Setup   = (*LocatorAdapter)(nil)
)

// NewLocator wraps the container.
func NewLocator(c Backend) *LocatorAdapter {
	return &LocatorAdapter{container: c}
}

func (l *LocatorAdapter) Get(id string) (any, error) {
	if !l.container.Registry().Exists(TypeID(id)) {
		return nil, fmt.Errorf("%w: no entry for %q", ErrNotFound, id)
	}
	return l.container.GetInstance(TypeID(id))
}

func (l *LocatorAdapter) Has(id string) bool {
	return l.container.HasInstance(TypeID(id))
}

func (l *LocatorAdapter) AddFactory(factory any, opts ...option.Option[FactoryOptions]) error {
	return l.container.AddFactory(factory, opts...)
}

func (l *LocatorAdapter) AddTypeMapping(forType, to TypeID, opts ...option.Option[MappingOptions]) error {
	return l.container.AddTypeMapping(forType, to, opts...)
}
