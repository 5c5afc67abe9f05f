// Package reflectutils gathers the reflection helpers used by the container and the config loader.
package reflectutils

import (
	"reflect"

	"github.com/a-peyrard/simpledic/fn"
)

// WalkStruct applies a consumer on all exported fields and nested fields of a given object.
//
// The consumer receives the field value, its type, and the path of field names leading to it.
func WalkStruct[T any](element T, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	walkStructInternal(reflect.ValueOf(element), []string{}, consumer)
}

func walkStructInternal(val reflect.Value, path []string, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	consumer(val, val.Type(), path)

	val = Deref(val)
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}
		// copy the path, siblings must not share the backing array
		fieldPath := append(append(make([]string, 0, len(path)+1), path...), structField.Name)
		walkStructInternal(val.Field(i), fieldPath, consumer)
	}
}

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// CreateNilStructs creates new struct instances for nil struct pointers
func CreateNilStructs(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer &&
		val.IsNil() &&
		val.CanSet() &&
		typ.Elem().Kind() == reflect.Struct {

		val.Set(reflect.New(typ.Elem()))
	}
}
