package session

import (
	"iter"

	"github.com/oomph-ac/strafe/oerror"
)

// History is a fixed capacity ring of the most recent items appended to it. Once full, appending
// drops the oldest item.
type History[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

// NewHistory returns a history holding at most capacity items.
func NewHistory[T any](capacity int) *History[T] {
	return &History[T]{items: make([]T, capacity)}
}

// Append adds an item, dropping the oldest one if the history is full. Appending to a history with
// zero capacity is a no-op.
func (h *History[T]) Append(item T) {
	if len(h.items) == 0 {
		return
	}
	h.items[h.tail] = item
	if h.size == len(h.items) {
		h.head = (h.head + 1) % len(h.items)
	} else {
		h.size++
	}
	h.tail = (h.tail + 1) % len(h.items)
}

// Get returns the item at logical position index, 0 being the oldest.
func (h *History[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= h.size {
		return zero, oerror.New("history: index %d out of range [0, %d)", index, h.size)
	}
	return h.items[(h.head+index)%len(h.items)], nil
}

// Latest returns the most recently appended item. The boolean is false if the history is empty.
func (h *History[T]) Latest() (T, bool) {
	var zero T
	if h.size == 0 {
		return zero, false
	}
	return h.items[(h.tail-1+len(h.items))%len(h.items)], true
}

// Iter yields the items from oldest to newest.
func (h *History[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range h.size {
			if !yield(h.items[(h.head+index)%len(h.items)]) {
				return
			}
		}
	}
}

// Len returns the amount of items held.
func (h *History[T]) Len() int {
	return h.size
}

// Cap returns the maximum amount of items the history can hold.
func (h *History[T]) Cap() int {
	return len(h.items)
}
