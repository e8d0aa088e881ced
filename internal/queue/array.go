package queue

// ArrayQueue is a linear array queue.
//
// Both indexes only move forward, so once rear reaches the last slot the
// queue reports full even if items were popped since. This "false overflow"
// is what CircleQueue fixes; ArrayQueue keeps it so the two can be compared.
type ArrayQueue[T any] struct {
	buf   []T
	front int // index before the head item
	rear  int // index of the tail item
}

// NewArray creates an ArrayQueue with room for size items.
// A size below 1 is treated as 1.
func NewArray[T any](size int) *ArrayQueue[T] {
	if size < 1 {
		size = 1
	}
	return &ArrayQueue[T]{
		buf:   make([]T, size),
		front: -1,
		rear:  -1,
	}
}

// Push adds an item to the tail.
// Returns false once rear has reached the last slot.
func (q *ArrayQueue[T]) Push(v T) bool {
	if q.IsFull() {
		return false
	}
	q.rear++
	q.buf[q.rear] = v
	return true
}

// Pop removes and returns the head item.
func (q *ArrayQueue[T]) Pop() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}
	q.front++
	v := q.buf[q.front]
	q.buf[q.front] = zero
	return v, true
}

// Peek returns the head item without removing it.
func (q *ArrayQueue[T]) Peek() (T, bool) {
	if q.IsEmpty() {
		var zero T
		return zero, false
	}
	return q.buf[q.front+1], true
}

// IsFull reports whether rear sits on the last slot.
func (q *ArrayQueue[T]) IsFull() bool {
	return q.rear == len(q.buf)-1
}

// IsEmpty reports whether every pushed item has been popped.
func (q *ArrayQueue[T]) IsEmpty() bool {
	return q.front == q.rear
}

// Len returns the number of items currently queued.
func (q *ArrayQueue[T]) Len() int {
	return q.rear - q.front
}

// Cap returns the number of slots in the backing array.
func (q *ArrayQueue[T]) Cap() int {
	return len(q.buf)
}

// Values returns a copy of the queued items, head first.
func (q *ArrayQueue[T]) Values() []T {
	out := make([]T, q.Len())
	copy(out, q.buf[q.front+1:q.rear+1])
	return out
}
