package classify

import (
	"log/slog"
	"time"

	"github.com/dendrascience/wordclass/chunk"
)

// Source hands out chunks until the stream is closed and drained.
type Source interface {
	Dequeue() (chunk.Chunk, bool)
}

// Sink receives the per-chunk results.
type Sink interface {
	Merge(Counts)
}

// Summary is what a worker reports once the stream is exhausted.
type Summary struct {
	ID     int
	Chunks int
	Bytes  int64
	Words  int
	Busy   time.Duration
}

// Worker consumes chunks from Source and merges their counts into Sink.
type Worker struct {
	ID     int
	Source Source
	Sink   Sink
	Logger *slog.Logger

	// OnChunk, if set, is called after each chunk has been merged.
	OnChunk func(id int, c chunk.Chunk, counts Counts)
}

// Run loops until Source reports the end of the stream. The only places it
// blocks are Source.Dequeue and Sink.Merge, and it never calls one while
// the other is in progress.
func (w *Worker) Run() Summary {
	s := Summary{ID: w.ID}
	for {
		c, ok := w.Source.Dequeue()
		if !ok {
			break
		}
		start := time.Now()
		counts := Analyze(c)
		w.Sink.Merge(counts)
		s.Busy += time.Since(start)
		s.Chunks++
		s.Bytes += int64(c.Len())
		s.Words += counts.Words
		if w.OnChunk != nil {
			w.OnChunk(w.ID, c, counts)
		}
	}
	if w.Logger != nil {
		w.Logger.Debug("worker terminated",
			slog.Int("worker", w.ID),
			slog.Int("chunks", s.Chunks),
			slog.Int64("bytes", s.Bytes))
	}
	return s
}
