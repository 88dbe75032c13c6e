package fifo

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/wordclass/chunk"
)

func mustNew(t *testing.T, capacity int) *Queue {
	t.Helper()
	q, err := New(capacity)
	require.NoError(t, err)
	return q
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		_, err := New(c)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}
}

func TestQueue_FIFOOrder(t *testing.T) {
	q := mustNew(t, 4)
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Enqueue(chunk.Chunk{Seq: i}, false))
	}
	assert.Equal(t, 4, q.Len())

	for i := 0; i < 4; i++ {
		c, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, c.Seq)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_WrapsAround(t *testing.T) {
	q := mustNew(t, 3)
	next := 0
	for round := 0; round < 5; round++ {
		require.NoError(t, q.Enqueue(chunk.Chunk{Seq: round * 2}, false))
		require.NoError(t, q.Enqueue(chunk.Chunk{Seq: round*2 + 1}, false))
		for i := 0; i < 2; i++ {
			c, ok := q.Dequeue()
			require.True(t, ok)
			assert.Equal(t, next, c.Seq)
			next++
		}
	}
}

func TestQueue_DrainsBeforeReportingEnd(t *testing.T) {
	q := mustNew(t, 5)
	require.NoError(t, q.Enqueue(chunk.Chunk{Seq: 0}, false))
	require.NoError(t, q.Enqueue(chunk.Chunk{Seq: 1}, false))
	require.NoError(t, q.Enqueue(chunk.Chunk{Seq: 2}, true))
	assert.True(t, q.Closed())

	for i := 0; i < 3; i++ {
		c, ok := q.Dequeue()
		require.True(t, ok, "queue still holds chunks")
		assert.Equal(t, i, c.Seq)
	}
	for i := 0; i < 3; i++ {
		_, ok := q.Dequeue()
		assert.False(t, ok, "empty and closed stays that way")
	}
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	q := mustNew(t, 2)
	require.NoError(t, q.Enqueue(chunk.Chunk{}, true))
	assert.ErrorIs(t, q.Enqueue(chunk.Chunk{}, false), ErrClosed)

	q2 := mustNew(t, 2)
	q2.Close()
	q2.Close()
	assert.ErrorIs(t, q2.Enqueue(chunk.Chunk{}, false), ErrClosed)
	_, ok := q2.Dequeue()
	assert.False(t, ok)
}

func TestQueue_EnqueueBlocksWhileFull(t *testing.T) {
	q := mustNew(t, 1)
	require.NoError(t, q.Enqueue(chunk.Chunk{Seq: 0}, false))

	done := make(chan error, 1)
	go func() {
		done <- q.Enqueue(chunk.Chunk{Seq: 1}, false)
	}()

	select {
	case <-done:
		t.Fatal("Enqueue returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	c, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 0, c.Seq)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue did not resume after a slot was freed")
	}
	c, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 1, c.Seq)
}

// TestQueue_LastChunkWakesEveryConsumer parks more consumers than there are
// chunks and checks that the final enqueue releases all of them.
func TestQueue_LastChunkWakesEveryConsumer(t *testing.T) {
	const consumers = 8
	q := mustNew(t, 4)

	var wg sync.WaitGroup
	got := make(chan bool, consumers)
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := q.Dequeue()
			got <- ok
		}()
	}

	// Give the consumers time to park.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, q.Enqueue(chunk.Chunk{Seq: 42}, true))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumers deadlocked waiting for a chunk that never comes")
	}
	close(got)

	var hits int
	for ok := range got {
		if ok {
			hits++
		}
	}
	assert.Equal(t, 1, hits, "exactly one consumer receives the last chunk")
}

func TestQueue_CloseWakesEveryConsumer(t *testing.T) {
	q := mustNew(t, 2)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := q.Dequeue()
			assert.False(t, ok)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	q.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not release waiting consumers")
	}
}

// TestQueue_Concurrent runs one producer against many consumers and checks
// that every chunk is delivered exactly once and that capacity is never
// exceeded.
func TestQueue_Concurrent(t *testing.T) {
	const (
		capacity  = 3
		consumers = 8
		total     = 5000
	)
	q := mustNew(t, capacity)

	var (
		mu   sync.Mutex
		seen = make(map[int]int, total)
		wg   sync.WaitGroup
	)
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				c, ok := q.Dequeue()
				if !ok {
					return
				}
				if n := q.Len(); n > capacity {
					t.Errorf("occupancy %d exceeds capacity %d", n, capacity)
				}
				mu.Lock()
				seen[c.Seq]++
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < total; i++ {
		require.NoError(t, q.Enqueue(chunk.Chunk{Seq: i}, i == total-1))
	}
	wg.Wait()

	require.Len(t, seen, total)
	for seq, n := range seen {
		if n != 1 {
			t.Errorf("chunk %d delivered %d times", seq, n)
		}
	}
	assert.LessOrEqual(t, q.HighWater(), capacity)
	assert.Equal(t, int64(total), q.Enqueued())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, capacity, q.Cap())
}
