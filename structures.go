package arbor

import "errors"

var (
	// ErrEmptyQueue is returned when dequeuing from an empty Queue.
	ErrEmptyQueue = errors.New("arbor: dequeue on empty queue")
	// ErrEmptyStack is returned when popping from an empty Stack.
	ErrEmptyStack = errors.New("arbor: pop on empty stack")
)

// Queue is a FIFO sequence. The zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// IsEmpty reports whether the queue holds no items.
func (q *Queue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

// Peek returns the first item without removing it. ok is false when empty.
func (q *Queue[T]) Peek() (item T, ok bool) {
	if len(q.items) == 0 {
		return item, false
	}
	return q.items[0], true
}

// Enqueue appends item at the end of the queue.
func (q *Queue[T]) Enqueue(item T) {
	q.items = append(q.items, item)
}

// Dequeue removes and returns the first item. It returns ErrEmptyQueue if the
// queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if len(q.items) == 0 {
		return zero, ErrEmptyQueue
	}
	item := q.items[0]
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = zero
	q.items = q.items[:len(q.items)-1]
	return item, nil
}

// Clear drops all queued items, keeping the backing array.
func (q *Queue[T]) Clear() {
	clear(q.items)
	q.items = q.items[:0]
}

// Stack is a LIFO sequence. The zero value is an empty stack ready to use.
type Stack[T any] struct {
	items []T
}

// Len returns the number of stacked items.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the stack holds no items.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Peek returns the top item without removing it. ok is false when empty.
func (s *Stack[T]) Peek() (item T, ok bool) {
	if len(s.items) == 0 {
		return item, false
	}
	return s.items[len(s.items)-1], true
}

// Push places item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top item. It returns ErrEmptyStack if the stack
// is empty.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrEmptyStack
	}
	last := len(s.items) - 1
	item := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return item, nil
}

// Clear drops all stacked items, keeping the backing array.
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
