package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific month.
// It ensures that months are unique and the series is always sorted.
type History[T float32 | float64 | string] struct {
	months []Month
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.months) }

// Append adds a point to the history.
//
// Existing value at that month is overwritten.
func (h *History[T]) Append(on Month, q T) *History[T] {
	i, found := slices.BinarySearchFunc(h.months, on, Month.Compare)
	if found {
		h.values[i] = q
		return h
	}
	h.months = slices.Insert(h.months, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Values returns an iterator over all month/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Month, T] {
	return func(yield func(Month, T) bool) {
		for i, on := range h.months {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Months returns a copy of the months held in the history, in chronological order.
func (h *History[T]) Months() []Month { return slices.Clone(h.months) }

// Get returns the value at 'month' and true or zero value and false.
func (h *History[T]) Get(month Month) (T, bool) {
	i, found := slices.BinarySearchFunc(h.months, month, Month.Compare)
	if found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// Within returns a new History restricted to the months of r.
func (h *History[T]) Within(r Range) *History[T] {
	res := new(History[T])
	for on, v := range h.Values() {
		if r.Contains(on) {
			res.months = append(res.months, on)
			res.values = append(res.values, v)
		}
	}
	return res
}
