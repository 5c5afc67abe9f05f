package simpledic

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/a-peyrard/simpledic/reflectutils"
	"github.com/a-peyrard/simpledic/set"
)

// callable wraps a Go function (constructor, factory, method value or method expression)
// with the parameter descriptors the container needs to autowire it.
type callable struct {
	name   string
	fn     reflect.Value
	typ    reflect.Type
	params []Param
}

func newCallable(function any, paramNames []string, optional set.Set[int]) (*callable, error) {
	if function == nil {
		return nil, errors.New("callable must not be nil")
	}
	t := reflect.TypeOf(function)
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("callable must be a function, got %s", t)
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return nil, fmt.Errorf("%w: function must either return the instance and an error, or just the instance", ErrCannotInferType)
	}
	if t.NumOut() == 2 && t.Out(1) != ErrorType {
		return nil, fmt.Errorf("%w: if function returns two elements, it must return an error as the second element", ErrCannotInferType)
	}

	value := reflect.ValueOf(function)
	c := &callable{
		name:   filepath.Base(runtime.FuncForPC(value.Pointer()).Name()),
		fn:     value,
		typ:    t,
		params: make([]Param, t.NumIn()),
	}
	for i := 0; i < t.NumIn(); i++ {
		name := fmt.Sprintf("arg%d", i)
		if i < len(paramNames) && paramNames[i] != "" {
			name = paramNames[i]
		}
		variadic := t.IsVariadic() && i == t.NumIn()-1
		c.params[i] = newParam(name, t.In(i), optional.Contains(i) || variadic)
	}

	return c, nil
}

func newParam(name string, goType reflect.Type, optional bool) Param {
	p := Param{
		Name:     name,
		Optional: optional,
	}
	switch {
	case goType.Kind() == reflect.Interface && goType.NumMethod() == 0:
		// untyped, nothing to inject
	case isComponentType(goType):
		p.Type = TypeIDOf(goType)
	default:
		p.Type = TypeID(goType.String())
		p.Scalar = true
	}
	return p
}

func (c *callable) resultType() reflect.Type {
	return c.typ.Out(0)
}

// call invokes the function with the given arguments. Missing trailing arguments are replaced
// by the zero value of their type, which is how Go expresses a defaulted parameter.
func (c *callable) call(args []any) (result any, err error) {
	if len(args) > c.typ.NumIn() {
		return nil, fmt.Errorf("too many arguments for %s: got %d, expected at most %d", c.name, len(args), c.typ.NumIn())
	}
	in := make([]reflect.Value, c.typ.NumIn())
	for i := range in {
		paramTyp := c.typ.In(i)
		if i >= len(args) || args[i] == nil {
			in[i] = reflect.Zero(paramTyp)
			continue
		}
		arg, ok := coerce(reflect.ValueOf(args[i]), paramTyp)
		if !ok {
			return nil, fmt.Errorf("argument %d of %s has type %T, not assignable to %s", i, c.name, args[i], paramTyp)
		}
		in[i] = arg
	}

	// panic recovery, as `Call` can panic if the function panics
	var results []reflect.Value
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic calling %s: %v", c.name, r)
			}
		}()
		if c.typ.IsVariadic() {
			results = c.fn.CallSlice(in)
		} else {
			results = c.fn.Call(in)
		}
	}()
	if err != nil {
		return nil, err
	}

	if len(results) == 2 && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

func (c *callable) String() string {
	return fmt.Sprintf("%s%s", c.name, c.typ.String()[len("func"):])
}

// coerce adapts a value to a parameter type: direct assignment, up-cast to an embedded
// struct, or dereference of a pointer when the parameter takes the struct by value.
func coerce(value reflect.Value, target reflect.Type) (reflect.Value, bool) {
	if upcast, ok := reflectutils.Upcast(value, target); ok {
		return upcast, true
	}
	if target.Kind() == reflect.Struct {
		if ptr, ok := reflectutils.Upcast(value, reflect.PointerTo(target)); ok && !ptr.IsNil() {
			return ptr.Elem(), true
		}
	}
	return reflect.Value{}, false
}
