package simpledic

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/a-peyrard/simpledic/set"
)

// AddFactories registers one factory per type, in type order. All failures are reported.
func (c *Container) AddFactories(factories map[TypeID]any) error {
	types := set.New[TypeID]()
	for typ := range factories {
		types.Add(typ)
	}

	var errs []error
	for _, typ := range set.Sorted(types) {
		if err := c.AddFactory(factories[typ], ForType(typ)); err != nil {
			errs = append(errs, fmt.Errorf("factory for %s:\n\t%w", typ, err))
		}
	}
	return errors.Join(errs...)
}

// AddFactoriesFrom registers every exported method of holder that looks like a factory: it returns
// a described type, optionally followed by an error. Methods are bound to holder, their
// parameters are autowired.
func AddFactoriesFrom(c Configurer, holder any) error {
	if holder == nil {
		return errors.New("factories holder must not be nil")
	}
	value := reflect.ValueOf(holder)
	typ := value.Type()

	var errs []error
	for i := 0; i < typ.NumMethod(); i++ {
		method := value.Method(i)
		if !isFactorySignature(method.Type()) {
			continue
		}
		if _, described := c.Registry().IDFor(method.Type().Out(0)); !described {
			continue
		}
		if err := c.AddFactory(method.Interface()); err != nil {
			errs = append(errs, fmt.Errorf("factory method %s.%s:\n\t%w", typ, typ.Method(i).Name, err))
		}
	}
	return errors.Join(errs...)
}

func isFactorySignature(t reflect.Type) bool {
	switch t.NumOut() {
	case 1:
		return true
	case 2:
		return t.Out(1) == ErrorType
	default:
		return false
	}
}
