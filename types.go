package simpledic

import (
	"io"
	"reflect"

	"github.com/a-peyrard/simpledic/reflectutils"
)

// TypeID is the unique name of a class (concrete type) or interface (abstract type) known by a Registry.
type TypeID string

var (
	ErrorType  = TypeOf[error]()
	AnyType    = TypeOf[any]()
	CloserType = TypeOf[io.Closer]()
)

// TypeOf returns the reflect.Type of I, including for interface types.
func TypeOf[I any]() reflect.Type {
	return reflect.TypeOf((*I)(nil)).Elem()
}

// TypeIDOf derives the identifier used for a Go type: pointers are dereferenced, so that
// *stubs.SubClass and stubs.SubClass share the id "stubs.SubClass".
func TypeIDOf(typ reflect.Type) TypeID {
	if typ == nil {
		return ""
	}
	return TypeID(reflectutils.DerefType(typ).String())
}

// IDOf returns the identifier of T.
func IDOf[T any]() TypeID {
	return TypeIDOf(TypeOf[T]())
}

func (id TypeID) String() string {
	return string(id)
}

// isComponentType reports if a Go type can denote a class or an interface: a named struct,
// a pointer to a named struct, or a named non empty interface.
func isComponentType(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Interface:
		return typ.Name() != "" && typ.NumMethod() > 0
	case reflect.Struct:
		return typ.Name() != ""
	case reflect.Pointer:
		return typ.Elem().Kind() == reflect.Struct && typ.Elem().Name() != ""
	default:
		return false
	}
}
