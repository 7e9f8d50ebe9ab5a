package grid

import "math"

// PriorityQueue is a bucket queue of cells keyed by SearchPriority.
// Buckets hold the arena index of their head cell; cells chain through
// nextWithSamePriority. Within a bucket the order is LIFO.
type PriorityQueue struct {
	cells   []Cell
	buckets []int
	count   int
	minimum int
}

// NewPriorityQueue creates an empty queue over the given cell arena.
func NewPriorityQueue(cells []Cell) *PriorityQueue {
	return &PriorityQueue{cells: cells, minimum: math.MaxInt}
}

// Count returns the number of queued cells.
func (q *PriorityQueue) Count() int { return q.count }

// Enqueue files c under its current search priority.
func (q *PriorityQueue) Enqueue(c *Cell) {
	q.count++
	priority := c.SearchPriority()
	if priority < q.minimum {
		q.minimum = priority
	}
	for priority >= len(q.buckets) {
		q.buckets = append(q.buckets, noCell)
	}
	c.nextWithSamePriority = q.buckets[priority]
	q.buckets[priority] = c.index
}

// Dequeue removes and returns a cell with the lowest priority.
// It panics when the queue is empty.
func (q *PriorityQueue) Dequeue() *Cell {
	if q.count == 0 {
		panic("grid: dequeue from empty priority queue")
	}
	q.count--
	for ; q.minimum < len(q.buckets); q.minimum++ {
		head := q.buckets[q.minimum]
		if head == noCell {
			continue
		}
		c := &q.cells[head]
		q.buckets[q.minimum] = c.nextWithSamePriority
		c.nextWithSamePriority = noCell
		return c
	}
	panic("grid: priority queue count out of sync with buckets")
}

// Change moves c from the bucket for oldPriority to the bucket for its
// current priority. It panics if c is not filed under oldPriority.
func (q *PriorityQueue) Change(c *Cell, oldPriority int) {
	if oldPriority < 0 || oldPriority >= len(q.buckets) || q.buckets[oldPriority] == noCell {
		panic("grid: no cell queued at the old priority")
	}
	head := q.buckets[oldPriority]
	if head == c.index {
		q.buckets[oldPriority] = c.nextWithSamePriority
	} else {
		prev := &q.cells[head]
		for prev.nextWithSamePriority != c.index {
			if prev.nextWithSamePriority == noCell {
				panic("grid: cell missing from its priority bucket")
			}
			prev = &q.cells[prev.nextWithSamePriority]
		}
		prev.nextWithSamePriority = c.nextWithSamePriority
	}
	q.count--
	q.Enqueue(c)
}

// Clear empties every bucket. Cell fields are left untouched.
func (q *PriorityQueue) Clear() {
	for i := range q.buckets {
		q.buckets[i] = noCell
	}
	q.count = 0
	q.minimum = math.MaxInt
}
