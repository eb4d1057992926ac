package tomasulo

import "github.com/sarchlab/tomasim/insts"

// DispatchQueue is the bounded FIFO between fetch and the reservation
// stations. It is a ring buffer of tags in program order.
type DispatchQueue struct {
	entries []insts.Tag
	head    int
	tail    int
	size    int
}

// NewDispatchQueue creates a queue that holds up to capacity tags.
func NewDispatchQueue(capacity int) *DispatchQueue {
	return &DispatchQueue{
		entries: make([]insts.Tag, capacity),
	}
}

// Len returns the number of queued tags.
func (q *DispatchQueue) Len() int {
	return q.size
}

// Cap returns the capacity of the queue.
func (q *DispatchQueue) Cap() int {
	return len(q.entries)
}

// Empty returns true if no tag is queued.
func (q *DispatchQueue) Empty() bool {
	return q.size == 0
}

// Full returns true if no more tags can be pushed.
func (q *DispatchQueue) Full() bool {
	return q.size == len(q.entries)
}

// Push appends a tag at the tail. It returns false if the queue is full.
func (q *DispatchQueue) Push(tag insts.Tag) bool {
	if q.Full() {
		return false
	}

	q.entries[q.tail] = tag
	q.tail = (q.tail + 1) % len(q.entries)
	q.size++

	return true
}

// Peek returns the head tag without removing it.
func (q *DispatchQueue) Peek() (insts.Tag, bool) {
	if q.Empty() {
		return insts.NoTag, false
	}
	return q.entries[q.head], true
}

// Pop removes and returns the head tag.
func (q *DispatchQueue) Pop() (insts.Tag, bool) {
	if q.Empty() {
		return insts.NoTag, false
	}

	tag := q.entries[q.head]
	q.entries[q.head] = insts.NoTag
	q.head = (q.head + 1) % len(q.entries)
	q.size--

	return tag, true
}

// Reset empties the queue.
func (q *DispatchQueue) Reset() {
	for i := range q.entries {
		q.entries[i] = insts.NoTag
	}
	q.head, q.tail, q.size = 0, 0, 0
}
