package simpledic

import (
	"testing"

	"github.com/a-peyrard/simpledic/internal/stubs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("it should resolve a class by its Go type", func(t *testing.T) {
		// GIVEN
		c := newStubContainer(t)

		// WHEN
		autowired, err := Get[*stubs.AutowireClass](c)

		// THEN
		require.NoError(t, err)
		assert.NotNil(t, autowired.ParentClass())
	})

	t.Run("it should resolve an interface", func(t *testing.T) {
		// GIVEN
		c := newStubContainer(t)
		require.NoError(t, AddTypeMappingFor[stubs.ParentInterface, *stubs.SubClass](c))

		// WHEN
		parent, err := Get[stubs.ParentInterface](c)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "sub", parent.Name())
	})

	t.Run("it should up-cast a subclass instance to its parent", func(t *testing.T) {
		// GIVEN
		c := newStubContainer(t)
		sub, err := Get[*stubs.SubClass](c)
		require.NoError(t, err)

		// WHEN
		parent, err := Get[*stubs.ParentClass](c)

		// THEN
		require.NoError(t, err)
		assert.Same(t, &sub.ParentClass, parent)
	})

	t.Run("it should resolve a type described with a forced identifier", func(t *testing.T) {
		// GIVEN
		reg := NewRegistry()
		require.NoError(t, DescribeConstructor(reg, stubs.NewParentClass, WithID("parent")))
		c := New(WithRegistry(reg))

		// WHEN
		parent, err := Get[*stubs.ParentClass](c)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "parent", parent.Name())
		assert.True(t, c.HasInstance("parent"))
	})

	t.Run("it should fail on an unresolvable type", func(t *testing.T) {
		// GIVEN
		c := newStubContainer(t)

		// WHEN
		_, err := Get[stubs.ParentInterface](c)

		// THEN
		assert.ErrorIs(t, err, ErrCannotInstantiateAbstractType)
		assert.False(t, Has[stubs.ParentInterface](c))
	})

	t.Run("it should panic on an unresolvable type", func(t *testing.T) {
		// GIVEN
		c := newStubContainer(t)

		// WHEN & THEN
		assert.Panics(t, func() {
			MustGet[stubs.ParentInterface](c)
		})
		assert.NotPanics(t, func() {
			MustGet[*stubs.ParentClass](c)
		})
	})
}
