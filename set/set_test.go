package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("it should report if a value was added", func(t *testing.T) {
		// GIVEN
		s := New[string]()

		// WHEN
		first := s.Add("stubs.ParentClass")
		second := s.Add("stubs.ParentClass")

		// THEN
		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, 1, s.Size())
	})

	t.Run("it should remove values", func(t *testing.T) {
		// GIVEN
		s := NewWithValues("a", "b")

		// WHEN
		s.Remove("a")

		// THEN
		assert.False(t, s.Contains("a"))
		assert.True(t, s.Contains("b"))
	})

	t.Run("it should clear all values", func(t *testing.T) {
		// GIVEN
		s := NewWithValues(1, 2, 3)

		// WHEN
		s.Clear()

		// THEN
		assert.True(t, s.IsEmpty())
	})

	t.Run("it should return sorted values", func(t *testing.T) {
		// GIVEN
		s := NewWithValues("c", "a", "b")

		// WHEN
		sorted := Sorted(s)

		// THEN
		assert.Equal(t, []string{"a", "b", "c"}, sorted)
	})

	t.Run("it should return all values as a slice", func(t *testing.T) {
		// GIVEN
		s := NewWithValues(3, 1)

		// WHEN
		values := s.ToSlice()

		// THEN
		assert.ElementsMatch(t, []int{1, 3}, values)
	})
}
