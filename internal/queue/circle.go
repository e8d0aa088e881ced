package queue

// CircleQueue is a circular array queue.
//
// The backing array has one slot more than the usable capacity so that a
// full queue ((rear+1) % n == front) can be told apart from an empty one
// (rear == front) without a separate counter.
type CircleQueue[T any] struct {
	buf   []T
	front int // index of the head item
	rear  int // index of the next free slot
}

// NewCircle creates a CircleQueue that holds up to size items.
// A size below 1 is treated as 1.
func NewCircle[T any](size int) *CircleQueue[T] {
	if size < 1 {
		size = 1
	}
	return &CircleQueue[T]{
		buf: make([]T, size+1),
	}
}

// Push adds an item to the tail.
// Returns false if the queue is full.
func (q *CircleQueue[T]) Push(v T) bool {
	if q.IsFull() {
		return false
	}
	q.buf[q.rear] = v
	q.rear = (q.rear + 1) % len(q.buf)
	return true
}

// Pop removes and returns the head item. The vacated slot is zeroed so the
// queue keeps no reference to an item it handed out.
func (q *CircleQueue[T]) Pop() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}
	v := q.buf[q.front]
	q.buf[q.front] = zero
	q.front = (q.front + 1) % len(q.buf)
	return v, true
}

// Peek returns the head item without removing it.
func (q *CircleQueue[T]) Peek() (T, bool) {
	if q.IsEmpty() {
		var zero T
		return zero, false
	}
	return q.buf[q.front], true
}

func (q *CircleQueue[T]) IsFull() bool {
	return (q.rear+1)%len(q.buf) == q.front
}

func (q *CircleQueue[T]) IsEmpty() bool {
	return q.rear == q.front
}

// Len returns the number of items currently queued.
func (q *CircleQueue[T]) Len() int {
	n := len(q.buf)
	return (q.rear + n - q.front) % n
}

// Cap returns the usable capacity (one less than the backing array).
func (q *CircleQueue[T]) Cap() int {
	return len(q.buf) - 1
}

// Values returns a copy of the queued items, head first.
func (q *CircleQueue[T]) Values() []T {
	n := len(q.buf)
	out := make([]T, 0, q.Len())
	for i := q.front; i != q.rear; i = (i + 1) % n {
		out = append(out, q.buf[i])
	}
	return out
}
