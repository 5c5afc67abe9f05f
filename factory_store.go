package simpledic

import (
	"fmt"

	"github.com/a-peyrard/simpledic/option"
	"github.com/a-peyrard/simpledic/set"
)

type (
	// ArgsInjector resolves ordered parameter descriptors into argument values. Trailing
	// parameters can be omitted from the result, their default (zero) value then applies.
	ArgsInjector interface {
		ResolveParameters(params []Param) ([]any, error)
	}

	// FactoryOptions holds the settings of a factory registration.
	FactoryOptions struct {
		typ        TypeID
		paramNames []string
		optional   set.Set[int]
	}

	// FactoryStore is the registry of producer functions, keyed by produced type.
	FactoryStore struct {
		registry  *Registry
		injector  ArgsInjector
		factories map[TypeID]*callable
		keys      []TypeID
	}
)

// ForType sets the type produced by the factory instead of inferring it from its result type.
func ForType(typ TypeID) option.Option[FactoryOptions] {
	return func(opts *FactoryOptions) {
		opts.typ = typ
	}
}

// FactoryParamNames names the factory parameters, in declaration order.
func FactoryParamNames(names ...string) option.Option[FactoryOptions] {
	return func(opts *FactoryOptions) {
		opts.paramNames = names
	}
}

// OptionalFactoryParams flags factory parameters (by index) as optional.
func OptionalFactoryParams(indexes ...int) option.Option[FactoryOptions] {
	return func(opts *FactoryOptions) {
		for _, idx := range indexes {
			opts.optional.Add(idx)
		}
	}
}

// NewFactoryStore creates an empty store, resolving factory arguments with the given injector.
func NewFactoryStore(registry *Registry, injector ArgsInjector) *FactoryStore {
	return &FactoryStore{
		registry:  registry,
		injector:  injector,
		factories: make(map[TypeID]*callable),
	}
}

// Register adds a factory and returns the type it produces. A later registration for the
// same type replaces the earlier one.
//
// The factory can be any function value: a plain function, a closure, a method value (bound to
// its receiver) or a method expression (the receiver is then autowired as the first parameter).
func (s *FactoryStore) Register(factory any, opts ...option.Option[FactoryOptions]) (TypeID, error) {
	options := option.Build(&FactoryOptions{optional: set.New[int]()}, opts...)

	c, err := newCallable(factory, options.paramNames, options.optional)
	if err != nil {
		return "", fmt.Errorf("invalid factory %T:\n\t%w", factory, err)
	}

	typ := options.typ
	if typ == "" {
		resultType := c.resultType()
		if resultType == AnyType {
			return "", fmt.Errorf("%w: factory %s returns %s", ErrCannotInferType, c, resultType)
		}
		var found bool
		if typ, found = s.registry.IDFor(resultType); !found {
			return "", fmt.Errorf("%w: result type %s of factory %s is not described", ErrTypeNotFound, resultType, c)
		}
	} else if !s.registry.Exists(typ) {
		return "", fmt.Errorf("%w: factory type %q", ErrTypeNotFound, typ)
	}

	if _, exists := s.factories[typ]; !exists {
		s.keys = append(s.keys, typ)
	}
	s.factories[typ] = c

	return typ, nil
}

// HasSuitable reports if a factory can produce the type.
func (s *FactoryStore) HasSuitable(typ TypeID) bool {
	_, found := s.find(typ)
	return found
}

func (s *FactoryStore) find(typ TypeID) (*callable, bool) {
	if c, found := s.factories[typ]; found {
		return c, true
	}
	for _, key := range s.keys {
		if s.registry.IsSubtype(key, typ) {
			return s.factories[key], true
		}
	}
	return nil, false
}

// Build invokes the suitable factory for the type, with autowired arguments, and checks the
// produced value is an instance of the type.
func (s *FactoryStore) Build(typ TypeID) (any, error) {
	c, found := s.find(typ)
	if !found {
		return nil, fmt.Errorf("no factory for %s", typ)
	}

	args, err := s.injector.ResolveParameters(c.params)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve arguments of factory %s:\n\t%w", c, err)
	}
	value, err := c.call(args)
	if err != nil {
		return nil, fmt.Errorf("factory %s failed:\n\t%w", c, err)
	}
	if isNil(value) {
		return nil, fmt.Errorf("%w: factory %s for %s returned nil", ErrFactoryTypeMismatch, c, typ)
	}
	if !s.registry.IsInstanceOf(value, typ) {
		return nil, fmt.Errorf("%w: factory %s for %s returned a value of type %T", ErrFactoryTypeMismatch, c, typ, value)
	}

	return value, nil
}

// Types lists the types having a factory, in registration order.
func (s *FactoryStore) Types() []TypeID {
	return append([]TypeID(nil), s.keys...)
}
