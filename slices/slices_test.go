package slices

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Run("it should filter strings by length", func(t *testing.T) {
		// GIVEN
		input := []string{"foo", "bar", "hello", "augustin", "baz"}
		predicate := func(s string) bool {
			return len(s) == 3
		}

		// WHEN
		result := Filter(input, predicate)

		// THEN
		assert.Equal(t, []string{"foo", "bar", "baz"}, result)
	})

	t.Run("it should return empty slice when no elements match", func(t *testing.T) {
		// GIVEN
		input := []string{"hello", "world", "testing"}
		predicate := func(s string) bool {
			return len(s) == 1
		}

		// WHEN
		result := Filter(input, predicate)

		// THEN
		assert.Empty(t, result)
	})
}

func TestMap(t *testing.T) {
	t.Run("it should map every element", func(t *testing.T) {
		// GIVEN
		input := []int{1, 2, 3}

		// WHEN
		result := Map(input, strconv.Itoa)

		// THEN
		assert.Equal(t, []string{"1", "2", "3"}, result)
	})

	t.Run("it should map an empty slice to an empty slice", func(t *testing.T) {
		// GIVEN / WHEN
		result := Map([]int{}, strconv.Itoa)

		// THEN
		assert.Empty(t, result)
	})
}

func TestUnsafeMap(t *testing.T) {
	t.Run("it should map all values when mapper succeeds", func(t *testing.T) {
		// GIVEN
		input := []string{"1", "2", "3"}

		// WHEN
		result, err := UnsafeMap(input, strconv.Atoi)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, result)
	})

	t.Run("it should stop at the first error", func(t *testing.T) {
		// GIVEN
		calls := 0
		mapper := func(s string) (int, error) {
			calls++
			if s == "boom" {
				return 0, errors.New("boom")
			}
			return len(s), nil
		}

		// WHEN
		result, err := UnsafeMap([]string{"a", "boom", "c"}, mapper)

		// THEN
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, 2, calls)
	})
}
