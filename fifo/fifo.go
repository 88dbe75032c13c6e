// Package fifo implements the bounded chunk queue shared by the segmenter
// and the analyzer pool.
//
// The queue is a monitor: one mutex serializes every state change and two
// condition variables park the goroutines that cannot proceed. The single
// producer waits on "not full"; consumers wait on "not empty or closed".
//
// End of stream is explicit. The producer either enqueues its final chunk
// with last set or calls Close. From then on consumers drain what is left
// and every Dequeue on the empty queue returns false at once.
package fifo

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/dendrascience/wordclass/chunk"
)

var (
	// ErrClosed is returned by Enqueue after the stream has been closed.
	ErrClosed = errors.New("fifo: queue closed")

	// ErrInvalidCapacity is returned by New for a capacity below 1.
	ErrInvalidCapacity = errors.New("fifo: capacity must be greater than 0")
)

// DefaultCapacity is the default number of slots.
const DefaultCapacity = 50

// Queue is a fixed-capacity circular buffer of chunks.
type Queue struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond // also signaled on close

	slots  []chunk.Chunk
	head   int // next slot to read
	tail   int // next slot to write
	full   bool
	closed bool

	// Mirrors of the occupancy kept for lock-free readers such as
	// metrics. Written only with mu held.
	depth     *atomic.Int64
	highWater *atomic.Int64
	enqueued  *atomic.Int64
}

// New returns an empty queue with the given number of slots.
func New(capacity int) (*Queue, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	q := &Queue{
		slots:     make([]chunk.Chunk, capacity),
		depth:     atomic.NewInt64(0),
		highWater: atomic.NewInt64(0),
		enqueued:  atomic.NewInt64(0),
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q, nil
}

// empty reports whether no slot is occupied. Callers hold mu.
func (q *Queue) empty() bool {
	return q.head == q.tail && !q.full
}

// Enqueue stores c at the tail, blocking while the queue is full.
//
// When last is true the stream is closed in the same critical section and
// every waiting consumer is woken, since each of them has to observe the
// end of stream on its own. Otherwise a single consumer is woken.
func (q *Queue) Enqueue(c chunk.Chunk, last bool) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.full && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}

	q.slots[q.tail] = c
	q.tail = (q.tail + 1) % len(q.slots)
	q.full = q.tail == q.head

	n := q.depth.Inc()
	if n > q.highWater.Load() {
		q.highWater.Store(n)
	}
	q.enqueued.Inc()

	if last {
		q.closed = true
		q.notEmpty.Broadcast()
		q.notFull.Broadcast()
		return nil
	}
	q.notEmpty.Signal()
	return nil
}

// Close ends the stream without a final chunk. It is safe to call more
// than once and after a last Enqueue.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Dequeue removes the chunk at the head, blocking while the queue is empty
// and still open. It returns false once the queue is both empty and closed.
func (q *Queue) Dequeue() (chunk.Chunk, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.empty() && !q.closed {
		q.notEmpty.Wait()
	}
	if q.empty() {
		return chunk.Chunk{}, false
	}

	c := q.slots[q.head]
	q.slots[q.head] = chunk.Chunk{}
	q.head = (q.head + 1) % len(q.slots)
	q.full = false
	q.depth.Dec()

	q.notFull.Signal()
	return c, true
}

// Cap returns the number of slots.
func (q *Queue) Cap() int {
	return len(q.slots)
}

// Len returns the number of occupied slots. It does not take the lock, so
// the value may be stale by the time the caller looks at it.
func (q *Queue) Len() int {
	return int(q.depth.Load())
}

// HighWater returns the largest occupancy observed so far.
func (q *Queue) HighWater() int {
	return int(q.highWater.Load())
}

// Enqueued returns the total number of chunks accepted.
func (q *Queue) Enqueued() int64 {
	return q.enqueued.Load()
}

// Closed reports whether the end of stream has been signaled.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
