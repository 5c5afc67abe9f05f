// Package fn holds small functional types shared by the reflection helpers.
package fn

// TriConsumer represents a function that accepts three input arguments and returns no result.
type TriConsumer[T1 any, T2 any, T3 any] func(t1 T1, t2 T2, t3 T3)

// AllTriConsumer creates a tri-consumer that will execute all the given tri-consumers, in order.
func AllTriConsumer[A any, B any, C any](consumers ...TriConsumer[A, B, C]) TriConsumer[A, B, C] {
	return func(a A, b B, c C) {
		for _, consumer := range consumers {
			consumer(a, b, c)
		}
	}
}

// Predicate tests a single value.
type Predicate[T any] func(t T) bool

// Not negates a predicate.
func Not[T any](predicate Predicate[T]) Predicate[T] {
	return func(t T) bool {
		return !predicate(t)
	}
}
