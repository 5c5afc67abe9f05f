package simpledic

import (
	"testing"

	"github.com/a-peyrard/simpledic/internal/stubs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMapStore(t *testing.T) {
	t.Run("it should resolve an exact mapping", func(t *testing.T) {
		// GIVEN
		store := NewTypeMapStore(newStubRegistry(t))
		require.NoError(t, store.Add(parentInterfaceID, subClassID, true))

		// WHEN
		to, found := store.Resolve(parentInterfaceID)

		// THEN
		assert.True(t, found)
		assert.Equal(t, subClassID, to)
	})

	t.Run("it should resolve through the first key that is a subtype, in insertion order", func(t *testing.T) {
		// GIVEN
		store := NewTypeMapStore(newStubRegistry(t))
		require.NoError(t, store.Add(IDOf[stubs.AutowireClass](), IDOf[stubs.AutowireClass](), true))
		require.NoError(t, store.Add(subClassID, subClassID, true))
		require.NoError(t, store.Add(parentClassID, parentClassID, true))

		// WHEN
		to, found := store.Resolve(parentInterfaceID)

		// THEN
		assert.True(t, found)
		assert.Equal(t, subClassID, to)
	})

	t.Run("it should forget a cached miss once a mapping is added", func(t *testing.T) {
		// GIVEN
		store := NewTypeMapStore(newStubRegistry(t))
		_, found := store.Resolve(parentInterfaceID)
		require.False(t, found)

		// WHEN
		require.NoError(t, store.Add(parentClassID, parentClassID, true))
		to, found := store.Resolve(parentInterfaceID)

		// THEN
		assert.True(t, found)
		assert.Equal(t, parentClassID, to)
	})

	t.Run("it should forget a cached miss once the registry changes", func(t *testing.T) {
		// GIVEN
		reg := newStubRegistry(t)
		store := NewTypeMapStore(reg)
		require.NoError(t, store.Add(parentClassID, subClassID, true))
		_, found := store.Resolve(namedComponentID)
		require.False(t, found)

		// WHEN
		require.NoError(t, DescribeInterface[namedComponent](reg))
		to, found := store.Resolve(namedComponentID)

		// THEN
		assert.True(t, found)
		assert.Equal(t, subClassID, to)
	})

	t.Run("it should overwrite only when asked to, keeping the key position", func(t *testing.T) {
		// GIVEN
		store := NewTypeMapStore(newStubRegistry(t))
		require.NoError(t, store.Add(parentInterfaceID, parentClassID, true))
		require.NoError(t, store.Add(parentClassID, parentClassID, true))

		// WHEN
		require.NoError(t, store.Add(parentInterfaceID, subClassID, false))
		kept, _ := store.Resolve(parentInterfaceID)
		require.NoError(t, store.Add(parentInterfaceID, subClassID, true))
		replaced, _ := store.Resolve(parentInterfaceID)

		// THEN
		assert.Equal(t, parentClassID, kept)
		assert.Equal(t, subClassID, replaced)
		assert.Equal(t, []Mapping{
			{For: parentInterfaceID, To: subClassID},
			{For: parentClassID, To: parentClassID},
		}, store.Mappings())
	})

	t.Run("it should reject unknown types", func(t *testing.T) {
		// GIVEN
		store := NewTypeMapStore(newStubRegistry(t))

		// WHEN & THEN
		assert.ErrorIs(t, store.Add("nope", parentClassID, true), ErrTypeNotFound)
		assert.ErrorIs(t, store.Add(parentClassID, "nope", true), ErrTypeNotFound)
		assert.Empty(t, store.Mappings())
	})
}
