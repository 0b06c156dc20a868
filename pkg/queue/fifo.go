package queue

import "mailsweep/pkg/models"

// FIFO is a bounded first-in-first-out frontier queue. FIFO ordering is
// what makes the traversal breadth-first: every depth-d item was enqueued
// before any depth-(d+1) item, so it is dequeued first.
//
// The queue is exclusively owned by a single crawl invocation; the
// orchestrator is its only reader and writer, so no locking is needed.
type FIFO struct {
	items   []models.QueueItem
	maxSize int // 0 means unbounded
	dropped int
}

// NewFIFO creates a FIFO holding at most maxSize pending items.
func NewFIFO(maxSize int) *FIFO {
	return &FIFO{maxSize: maxSize}
}

// Push appends an item. When the queue is at capacity the candidate is
// silently dropped and Push returns false; a full frontier caps memory on
// link-dense sites and is never a crawl failure.
func (q *FIFO) Push(item models.QueueItem) bool {
	if q.maxSize > 0 && len(q.items) >= q.maxSize {
		q.dropped++
		return false
	}
	q.items = append(q.items, item)
	return true
}

// Pop removes and returns the front item. Returns false when empty.
func (q *FIFO) Pop() (models.QueueItem, bool) {
	if len(q.items) == 0 {
		return models.QueueItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of pending items.
func (q *FIFO) Len() int {
	return len(q.items)
}

// Dropped returns how many candidates were rejected by the capacity bound.
func (q *FIFO) Dropped() int {
	return q.dropped
}
