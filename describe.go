package simpledic

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/simpledic/option"
	"github.com/a-peyrard/simpledic/set"
)

// DescribeOptions holds the settings of the Describe* functions.
type DescribeOptions struct {
	id         TypeID
	paramNames []string
	optional   set.Set[int]
	ancestors  []TypeID
}

// WithID forces the identifier of the described type instead of deriving it from the Go type.
func WithID(id TypeID) option.Option[DescribeOptions] {
	return func(opts *DescribeOptions) {
		opts.id = id
	}
}

// ParamNames names the constructor parameters, in declaration order.
func ParamNames(names ...string) option.Option[DescribeOptions] {
	return func(opts *DescribeOptions) {
		opts.paramNames = names
	}
}

// OptionalParams flags constructor parameters (by index) as optional: when they cannot be
// resolved, they and all following parameters receive their zero value.
func OptionalParams(indexes ...int) option.Option[DescribeOptions] {
	return func(opts *DescribeOptions) {
		for _, idx := range indexes {
			opts.optional.Add(idx)
		}
	}
}

// Implements declares interfaces satisfied by the described type, on top of the Go interfaces
// it implements.
func Implements(ids ...TypeID) option.Option[DescribeOptions] {
	return func(opts *DescribeOptions) {
		opts.ancestors = append(opts.ancestors, ids...)
	}
}

// Extends declares parent classes of the described type, on top of its embedded structs.
func Extends(ids ...TypeID) option.Option[DescribeOptions] {
	return func(opts *DescribeOptions) {
		opts.ancestors = append(opts.ancestors, ids...)
	}
}

func buildDescribeOptions(opts []option.Option[DescribeOptions]) *DescribeOptions {
	return option.Build(&DescribeOptions{optional: set.New[int]()}, opts...)
}

func (o *DescribeOptions) idOr(typ reflect.Type) TypeID {
	if o.id != "" {
		return o.id
	}
	return TypeIDOf(typ)
}

// DescribeInterface registers the interface I as an abstract type.
func DescribeInterface[I any](reg *Registry, opts ...option.Option[DescribeOptions]) error {
	typ := TypeOf[I]()
	if typ.Kind() != reflect.Interface {
		return fmt.Errorf("%s is not an interface", typ)
	}
	options := buildDescribeOptions(opts)
	return reg.Register(&Descriptor{
		ID:        options.idOr(typ),
		GoType:    typ,
		Kind:      KindAbstract,
		Ancestors: options.ancestors,
	})
}

// DescribeStruct registers a struct type without constructor: instances are new zero values,
// handled through a pointer. T can be the struct or a pointer to it.
func DescribeStruct[T any](reg *Registry, opts ...option.Option[DescribeOptions]) error {
	typ := TypeOf[T]()
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("%s is not a struct", typ)
	}
	options := buildDescribeOptions(opts)
	return reg.Register(&Descriptor{
		ID:        options.idOr(typ),
		GoType:    reflect.PointerTo(typ),
		Kind:      KindConcrete,
		Ancestors: options.ancestors,
		Construct: func([]any) (any, error) {
			return reflect.New(typ).Interface(), nil
		},
	})
}

// DescribeConstructor registers the type returned by a constructor function. The function
// returns either the instance, or the instance and an error; its parameters are autowired.
func DescribeConstructor(reg *Registry, constructor any, opts ...option.Option[DescribeOptions]) error {
	options := buildDescribeOptions(opts)
	c, err := newCallable(constructor, options.paramNames, options.optional)
	if err != nil {
		return fmt.Errorf("invalid constructor %T:\n\t%w", constructor, err)
	}
	return reg.Register(&Descriptor{
		ID:        options.idOr(c.resultType()),
		GoType:    c.resultType(),
		Kind:      KindConcrete,
		Params:    c.params,
		Ancestors: options.ancestors,
		Construct: c.call,
	})
}

// MustDescribe panics if one of the describe calls failed. It is meant for static wiring code:
//
//	simpledic.MustDescribe(
//		simpledic.DescribeInterface[Repository](reg),
//		simpledic.DescribeConstructor(reg, NewSQLRepository),
//	)
func MustDescribe(errs ...error) {
	for _, err := range errs {
		if err != nil {
			panic(fmt.Sprintf("failed to describe type:\n\t%v", err))
		}
	}
}

// Describer is implemented by generated registries (see cmd/generator).
type Describer interface {
	Describe(reg *Registry) error
}

// EmptyRegistry is embedded by the struct the generator attaches the generated Describe method to.
type EmptyRegistry struct{}

// Describe describes nothing, the generated method of the embedding struct takes precedence.
func (EmptyRegistry) Describe(*Registry) error {
	return nil
}
