package simpledic

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/simpledic/option"
)

type (
	// Resolver is the read side of a container, implemented by Container and SyncContainer.
	Resolver interface {
		GetInstance(typ TypeID) (any, error)
		HasInstance(typ TypeID) bool
		Registry() *Registry
	}

	// Configurer is the write side of a container, implemented by Container and SyncContainer.
	Configurer interface {
		Setup
		Registry() *Registry
	}
)

// idFor returns the identifier T is described under, falling back on the derived one.
func idFor[T any](registry *Registry) TypeID {
	typ := TypeOf[T]()
	if id, found := registry.IDFor(typ); found {
		return id
	}
	return TypeIDOf(typ)
}

// Get resolves T from the container.
//
// Example:
//
//	repo, err := simpledic.Get[Repository](c)
func Get[T any](r Resolver) (T, error) {
	var zero T

	instance, err := r.GetInstance(idFor[T](r.Registry()))
	if err != nil {
		return zero, err
	}
	value, ok := coerce(reflect.ValueOf(instance), TypeOf[T]())
	if !ok {
		return zero, fmt.Errorf("%w: resolved instance of type %T is not a %s", ErrFactoryTypeMismatch, instance, TypeOf[T]())
	}

	return value.Interface().(T), nil
}

// MustGet is Get, panicking on failure.
func MustGet[T any](r Resolver) T {
	value, err := Get[T](r)
	if err != nil {
		panic(fmt.Sprintf("failed to get %s:\n\t%v", TypeOf[T](), err))
	}
	return value
}

// Has reports if T can be resolved, creating and caching it on success.
func Has[T any](r Resolver) bool {
	return r.HasInstance(idFor[T](r.Registry()))
}

// AddTypeMappingFor maps the type For to the type To.
func AddTypeMappingFor[For, To any](c Configurer, opts ...option.Option[MappingOptions]) error {
	registry := c.Registry()
	return c.AddTypeMapping(idFor[For](registry), idFor[To](registry), opts...)
}
