// SPDX-License-Identifier: MIT

// Package converter composes pure record transforms ("currency converters")
// and maps them over collections.
//
// Compose(f1, f2, ..., fn)(x) evaluates f1(f2(...fn(x))): the last function
// runs first and the first function runs last, so its output wins any field
// conflict. With no functions Compose is the identity.
package converter

// Func is a pure transform of one record into another.
type Func[T any] func(T) T

// Identity returns its argument unchanged.
func Identity[T any](v T) T { return v }

// Compose chains fns right to left. Nil entries are skipped.
func Compose[T any](fns ...Func[T]) Func[T] {
	chain := make([]Func[T], 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			chain = append(chain, fn)
		}
	}

	switch len(chain) {
	case 0:
		return Identity[T]
	case 1:
		return chain[0]
	}

	return func(v T) T {
		for i := len(chain) - 1; i >= 0; i-- {
			v = chain[i](v)
		}

		return v
	}
}

// Apply maps Compose(fns...) over items and returns a new slice; items
// itself is not modified.
func Apply[T any](items []T, fns ...Func[T]) []T {
	composed := Compose(fns...)
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = composed(item)
	}

	return out
}
