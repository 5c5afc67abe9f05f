package simpledic

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/a-peyrard/simpledic/set"
)

type (
	instanceEntry struct {
		typ      TypeID
		instance any
	}

	// InstanceStore is the singleton cache of the container. The same instance can be stored under
	// several identifiers (its class, and each requested type it satisfied).
	InstanceStore struct {
		registry *Registry
		entries  []instanceEntry
		index    map[TypeID]int

		// types for which a suitable instance was searched for and not found, dropped as soon
		// as a new instance is stored or the registry changes
		misses           set.Set[TypeID]
		missesGeneration uint64
	}

	// closerKey identifies an instance of a non comparable type by the data it points to.
	closerKey struct {
		typ reflect.Type
		ptr uintptr
	}
)

// NewInstanceStore creates an empty store.
func NewInstanceStore(registry *Registry) *InstanceStore {
	return &InstanceStore{
		registry: registry,
		index:    make(map[TypeID]int),
		misses:   set.New[TypeID](),
	}
}

// Put stores an instance under the given type, replacing any previous one.
func (s *InstanceStore) Put(typ TypeID, instance any) {
	if idx, found := s.index[typ]; found {
		s.entries[idx].instance = instance
	} else {
		s.index[typ] = len(s.entries)
		s.entries = append(s.entries, instanceEntry{typ: typ, instance: instance})
	}
	s.misses.Clear()
}

// Get returns the instance stored exactly under the given type.
func (s *InstanceStore) Get(typ TypeID) (any, bool) {
	idx, found := s.index[typ]
	if !found {
		return nil, false
	}
	return s.entries[idx].instance, true
}

// GetSuitable returns the instance stored under the type or, failing that, the first stored
// instance (in insertion order) which is an instance of the type. A suitable instance found by
// scanning is stored under the requested type as well, so the next lookup is direct.
func (s *InstanceStore) GetSuitable(typ TypeID) (any, bool) {
	if instance, found := s.Get(typ); found {
		return instance, true
	}
	if generation := s.registry.Generation(); generation != s.missesGeneration {
		s.misses.Clear()
		s.missesGeneration = generation
	}
	if s.misses.Contains(typ) {
		return nil, false
	}

	for _, entry := range s.entries {
		if s.registry.IsInstanceOf(entry.instance, typ) {
			s.Put(typ, entry.instance)
			return entry.instance, true
		}
	}
	s.misses.Add(typ)

	return nil, false
}

// Remove drops every entry holding the instance, whatever type it is stored under.
func (s *InstanceStore) Remove(instance any) {
	key, ok := identityOf(instance)
	if !ok {
		return
	}
	kept := s.entries[:0]
	clear(s.index)
	for _, entry := range s.entries {
		if k, ok := identityOf(entry.instance); ok && k == key {
			continue
		}
		s.index[entry.typ] = len(kept)
		kept = append(kept, entry)
	}
	clear(s.entries[len(kept):])
	s.entries = kept
}

// Types lists the identifiers instances are stored under, in insertion order.
func (s *InstanceStore) Types() []TypeID {
	result := make([]TypeID, len(s.entries))
	for i, entry := range s.entries {
		result[i] = entry.typ
	}
	return result
}

// Close closes every distinct stored instance implementing io.Closer, in reverse insertion
// order, skipping the given instances. All failures are reported.
func (s *InstanceStore) Close(skip ...any) error {
	closed := make(map[any]bool)
	for _, instance := range skip {
		if key, ok := identityOf(instance); ok {
			closed[key] = true
		}
	}

	var closeErrors []error
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		closer, ok := entry.instance.(io.Closer)
		if !ok {
			continue
		}
		if key, ok := identityOf(entry.instance); ok {
			if closed[key] {
				continue
			}
			closed[key] = true
		}
		if err := closer.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close instance %s:\n\t%w", entry.typ, err))
		}
	}

	return errors.Join(closeErrors...)
}

// identityOf returns a map key telling two instances apart. Comparable values are their own key,
// maps, funcs and slices are keyed by the data they point to. Other values have no identity.
func identityOf(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	typ := reflect.TypeOf(value)
	if typ.Comparable() {
		return value, true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Map, reflect.Func, reflect.Slice:
		return closerKey{typ: typ, ptr: v.Pointer()}, true
	default:
		return nil, false
	}
}
