package simpledic

import (
	"errors"
	"fmt"
	"time"

	"github.com/a-peyrard/simpledic/option"
	"github.com/rs/zerolog"
)

type (
	// Options holds the settings of a Container.
	Options struct {
		registry *Registry
		logger   *zerolog.Logger
	}

	// MappingOptions holds the settings of a type mapping registration.
	MappingOptions struct {
		overwrite bool
	}

	// Container turns a requested type into a ready to use instance. It combines type mappings,
	// a singleton cache, factories and constructor autowiring, and detects dependency cycles.
	//
	// A Container is meant to be used from one goroutine at a time, see Synchronized otherwise.
	Container struct {
		registry  *Registry
		typeMaps  *TypeMapStore
		instances *InstanceStore
		factories *FactoryStore
		stack     *ResolutionStack
		locator   *LocatorAdapter
		// cached facades of the container, never closed by it
		bootstrap []any

		logger *zerolog.Logger
	}
)

var (
	containerID     = IDOf[*Container]()
	syncContainerID = IDOf[*SyncContainer]()
	locatorID       = IDOf[Locator]()

	_ Resolver   = (*Container)(nil)
	_ Configurer = (*Container)(nil)
	_ Backend    = (*Container)(nil)
)

// WithRegistry makes the container use an existing registry, instead of a new empty one.
func WithRegistry(registry *Registry) option.Option[Options] {
	return func(opts *Options) {
		opts.registry = registry
	}
}

// WithLogger sets the logger used to trace resolutions. Nothing is logged by default.
func WithLogger(logger *zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// Overwrite tells if a mapping replaces an existing one for the same type (the default), or is ignored.
func Overwrite(overwrite bool) option.Option[MappingOptions] {
	return func(opts *MappingOptions) {
		opts.overwrite = overwrite
	}
}

// New creates an empty container. The container is its own first cached instance, together with
// a Locator over itself, so components can depend on either.
func New(opts ...option.Option[Options]) *Container {
	nop := zerolog.Nop()
	options := option.Build(&Options{logger: &nop}, opts...)
	if options.registry == nil {
		options.registry = NewRegistry()
	}

	c := &Container{
		registry:  options.registry,
		typeMaps:  NewTypeMapStore(options.registry),
		instances: NewInstanceStore(options.registry),
		stack:     NewResolutionStack(),
		logger:    options.logger,
	}
	c.factories = NewFactoryStore(options.registry, c)
	c.locator = NewLocator(c)

	// bootstrap: describe and cache the container itself and its locator facade
	if !c.registry.Exists(containerID) {
		MustDescribe(c.registry.Register(&Descriptor{
			ID:     containerID,
			GoType: TypeOf[*Container](),
			Kind:   KindAbstract,
		}))
	}
	if !c.registry.Exists(locatorID) {
		MustDescribe(DescribeInterface[Locator](c.registry))
	}
	c.instances.Put(containerID, c)
	c.instances.Put(locatorID, c.locator)
	c.bootstrap = []any{c.locator}

	return c
}

// Registry returns the type registry used by the container.
func (c *Container) Registry() *Registry {
	return c.registry
}

// GetInstance returns the instance for the requested type, creating and caching it if needed.
// Repeated requests for the same type return the same instance.
func (c *Container) GetInstance(typ TypeID) (any, error) {
	if instance, found := c.instances.GetSuitable(typ); found {
		return instance, nil
	}
	if !c.registry.Exists(typ) {
		return nil, &ContainerError{Type: typ, Cause: fmt.Errorf("%w: %q", ErrTypeNotFound, typ)}
	}

	instance, err := c.createInstance(typ)
	if err != nil {
		return nil, err
	}
	// keyed by the requested type, so the next request is a direct hit
	c.instances.Put(typ, instance)

	return instance, nil
}

// HasInstance reports if GetInstance would succeed for the type. This is not a pure predicate:
// on success the instance is created and cached.
func (c *Container) HasInstance(typ TypeID) bool {
	_, err := c.GetInstance(typ)
	return err == nil
}

// AddFactory registers a factory function. The produced type is inferred from the function result
// type unless ForType is given. The produced type also becomes discoverable by subtype search.
func (c *Container) AddFactory(factory any, opts ...option.Option[FactoryOptions]) error {
	typ, err := c.factories.Register(factory, opts...)
	if err != nil {
		return err
	}
	c.logger.Debug().Str("type", typ.String()).Msg("factory registered")

	return c.AddTypeMapping(typ, typ)
}

// AddTypeMapping tells the container to build `to` when `forType` is requested.
func (c *Container) AddTypeMapping(forType, to TypeID, opts ...option.Option[MappingOptions]) error {
	options := option.Build(&MappingOptions{overwrite: true}, opts...)
	if err := c.typeMaps.Add(forType, to, options.overwrite); err != nil {
		return err
	}
	c.logger.Debug().
		Str("for", forType.String()).
		Str("to", to.String()).
		Bool("overwrite", options.overwrite).
		Msg("type mapping registered")

	return nil
}

// AddTypeMappings registers several mappings, in order. All failures are reported.
func (c *Container) AddTypeMappings(mappings []Mapping, opts ...option.Option[MappingOptions]) error {
	var errs []error
	for _, m := range mappings {
		if err := c.AddTypeMapping(m.For, m.To, opts...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddType maps the type to itself, only to make it discoverable by subtype search.
//
// Deprecated: use AddTypeMapping from the requested interface to the type, or AddFactory.
func (c *Container) AddType(typ TypeID) error {
	return c.AddTypeMapping(typ, typ)
}

// Close closes every cached instance implementing io.Closer, except the container and its facades.
func (c *Container) Close() error {
	return c.instances.Close(append([]any{c}, c.bootstrap...)...)
}

func (c *Container) createInstance(typ TypeID) (instance any, err error) {
	if err := c.stack.Push(typ); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := c.logger.With().Str("type", typ.String()).Int("depth", c.stack.Len()).Logger()
	logger.Trace().Msg("creating instance")

	defer func() {
		popped, ok := c.stack.Pop()
		if !ok || popped != typ {
			err = errors.Join(err, fmt.Errorf("%w: expected to pop %s, got %q", ErrInternalConsistency, typ, popped))
			instance = nil
		}
	}()

	instance, err = c.doCreateInstance(typ, &logger)
	if err != nil {
		logger.Debug().Err(err).Msg("instance creation failed")
		return nil, &ContainerError{Type: typ, Cause: err}
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msgf("instance created: %T", instance)

	return instance, nil
}

func (c *Container) doCreateInstance(typ TypeID, logger *zerolog.Logger) (any, error) {
	if mapped, found := c.typeMaps.Resolve(typ); found && mapped != typ {
		logger.Trace().Str("mapped", mapped.String()).Msg("using type mapping")
		return c.createInstance(mapped)
	}

	// a transitively mapped type may already have a cached instance
	if instance, found := c.instances.GetSuitable(typ); found {
		logger.Trace().Msg("using cached instance")
		return instance, nil
	}

	if c.factories.HasSuitable(typ) {
		logger.Trace().Msg("using factory")
		return c.factories.Build(typ)
	}

	return c.autowire(typ, logger)
}

func (c *Container) autowire(typ TypeID, logger *zerolog.Logger) (any, error) {
	d, err := c.registry.Get(typ)
	if err != nil {
		return nil, err
	}
	if !d.Instantiable() {
		return nil, fmt.Errorf("%w: %s has no mapping, no factory and no cached instance", ErrCannotInstantiateAbstractType, typ)
	}

	logger.Trace().Int("params", len(d.Params)).Msg("autowiring constructor")
	args, err := c.ResolveParameters(d.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve constructor arguments:\n\t%w", err)
	}
	instance, err := d.Construct(args)
	if err != nil {
		return nil, fmt.Errorf("constructor failed:\n\t%w", err)
	}

	return instance, nil
}
