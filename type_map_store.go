package simpledic

import (
	"fmt"
)

type (
	// Mapping is a configured substitution: when For is requested, To is built instead.
	Mapping struct {
		For TypeID `mapstructure:"for" yaml:"for"`
		To  TypeID `mapstructure:"to" yaml:"to"`
	}

	// TypeMapStore is the alias table of the container.
	TypeMapStore struct {
		registry *Registry
		mappings map[TypeID]TypeID
		keys     []TypeID

		// subtype lookup results (including misses), dropped on every mutation of the store
		// or of the registry
		lookupCache     map[TypeID]TypeID
		cacheGeneration uint64
	}
)

// NewTypeMapStore creates an empty store validating identifiers against the registry.
func NewTypeMapStore(registry *Registry) *TypeMapStore {
	return &TypeMapStore{
		registry:    registry,
		mappings:    make(map[TypeID]TypeID),
		lookupCache: make(map[TypeID]TypeID),
	}
}

// Add records for → to, unless a mapping already exists for `for` and overwrite is false.
func (s *TypeMapStore) Add(forType, to TypeID, overwrite bool) error {
	if !s.registry.Exists(forType) {
		return fmt.Errorf("%w: mapping for %q", ErrTypeNotFound, forType)
	}
	if !s.registry.Exists(to) {
		return fmt.Errorf("%w: mapping target %q", ErrTypeNotFound, to)
	}

	_, exists := s.mappings[forType]
	if exists && !overwrite {
		return nil
	}
	if !exists {
		s.keys = append(s.keys, forType)
	}
	s.mappings[forType] = to
	clear(s.lookupCache)

	return nil
}

// Resolve returns the type to build for the requested one: the exact mapping if any, otherwise
// the target of the first registered key (in insertion order) which is a subtype of the request.
func (s *TypeMapStore) Resolve(typ TypeID) (TypeID, bool) {
	if to, found := s.mappings[typ]; found {
		return to, true
	}
	if generation := s.registry.Generation(); generation != s.cacheGeneration {
		clear(s.lookupCache)
		s.cacheGeneration = generation
	}
	if to, cached := s.lookupCache[typ]; cached {
		return to, to != ""
	}

	var to TypeID
	for _, key := range s.keys {
		if s.registry.IsSubtype(key, typ) {
			to = s.mappings[key]
			break
		}
	}
	s.lookupCache[typ] = to

	return to, to != ""
}

// Mappings lists the registered mappings in insertion order.
func (s *TypeMapStore) Mappings() []Mapping {
	result := make([]Mapping, len(s.keys))
	for i, key := range s.keys {
		result[i] = Mapping{For: key, To: s.mappings[key]}
	}
	return result
}
