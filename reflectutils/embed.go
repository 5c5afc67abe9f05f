package reflectutils

import "reflect"

// DerefType strips all pointer levels from a type.
func DerefType(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// EmbeddedStructs lists the struct types embedded (anonymous fields, by value or by pointer)
// in the given type, recursively and depth first. Non struct types embed nothing.
func EmbeddedStructs(typ reflect.Type) []reflect.Type {
	var result []reflect.Type
	collectEmbedded(DerefType(typ), &result, map[reflect.Type]bool{})
	return result
}

func collectEmbedded(typ reflect.Type, result *[]reflect.Type, visited map[reflect.Type]bool) {
	if typ == nil || typ.Kind() != reflect.Struct || visited[typ] {
		return
	}
	visited[typ] = true
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.Anonymous {
			continue
		}
		embedded := DerefType(field.Type)
		if embedded.Kind() != reflect.Struct {
			continue
		}
		*result = append(*result, embedded)
		collectEmbedded(embedded, result, visited)
	}
}

// Upcast converts a value to the target type, either because it is directly assignable,
// or because the target is an embedded struct of the value (the value "extends" the target).
//
// For pointer targets, the address of an embedded value field is returned, so the result
// shares its state with the original value.
func Upcast(value reflect.Value, target reflect.Type) (reflect.Value, bool) {
	if !value.IsValid() {
		return reflect.Value{}, false
	}
	if value.Type().AssignableTo(target) {
		return value, true
	}
	if value.Kind() == reflect.Interface {
		return Upcast(value.Elem(), target)
	}

	structVal := value
	if structVal.Kind() == reflect.Pointer {
		if structVal.IsNil() {
			return reflect.Value{}, false
		}
		structVal = structVal.Elem()
	}
	if structVal.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	typ := structVal.Type()
	for i := 0; i < typ.NumField(); i++ {
		if !typ.Field(i).Anonymous {
			continue
		}
		field := structVal.Field(i)
		if !field.CanInterface() {
			continue
		}
		if field.Kind() == reflect.Struct && target.Kind() == reflect.Pointer &&
			reflect.PointerTo(field.Type()).AssignableTo(target) && field.CanAddr() {
			return field.Addr(), true
		}
		if upcast, ok := Upcast(field, target); ok {
			return upcast, true
		}
	}

	return reflect.Value{}, false
}
