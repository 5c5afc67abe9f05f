package simpledic

import (
	"sync"

	"github.com/a-peyrard/simpledic/option"
)

// SyncContainer serializes every operation of a Container with a single lock. The resolution
// stack is shared by all the nested creations of a request, so finer grained locking is not an option.
type SyncContainer struct {
	mu    sync.Mutex
	inner *Container
}

var (
	_ Resolver   = (*SyncContainer)(nil)
	_ Configurer = (*SyncContainer)(nil)
	_ Backend    = (*SyncContainer)(nil)
)

// Synchronized wraps the container. The container stops handing out itself and its Locator:
// components get the SyncContainer and a Locator over it instead, so every call goes through
// the lock. The container must not be used directly afterward.
//
// The lock is not reentrant, a constructor or factory must not call the Locator it receives.
func Synchronized(c *Container) *SyncContainer {
	s := &SyncContainer{inner: c}

	if !c.registry.Exists(syncContainerID) {
		MustDescribe(c.registry.Register(&Descriptor{
			ID:     syncContainerID,
			GoType: TypeOf[*SyncContainer](),
			Kind:   KindAbstract,
		}))
	}
	c.instances.Remove(c)
	c.instances.Remove(c.locator)
	c.locator = NewLocator(s)
	c.instances.Put(syncContainerID, s)
	c.instances.Put(locatorID, c.locator)
	c.bootstrap = []any{s, c.locator}

	return s
}

func (s *SyncContainer) GetInstance(typ TypeID) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetInstance(typ)
}

func (s *SyncContainer) HasInstance(typ TypeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.HasInstance(typ)
}

func (s *SyncContainer) AddFactory(factory any, opts ...option.Option[FactoryOptions]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.AddFactory(factory, opts...)
}

func (s *SyncContainer) AddTypeMapping(forType, to TypeID, opts ...option.Option[MappingOptions]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.AddTypeMapping(forType, to, opts...)
}

func (s *SyncContainer) AddTypeMappings(mappings []Mapping, opts ...option.Option[MappingOptions]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.AddTypeMappings(mappings, opts...)
}

// Registry returns the registry of the wrapped container. Describing types is not synchronized,
// it is expected to happen before the container is shared.
func (s *SyncContainer) Registry() *Registry {
	return s.inner.Registry()
}

func (s *SyncContainer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Snapshot()
}

func (s *SyncContainer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Close()
}
