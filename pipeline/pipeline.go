// Package pipeline runs one counting pass: a segmenter feeding a bounded
// queue drained by a fixed pool of analyzers that merge into a per-file
// table.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dendrascience/wordclass/aggregate"
	"github.com/dendrascience/wordclass/chunk"
	"github.com/dendrascience/wordclass/classify"
	"github.com/dendrascience/wordclass/fifo"
	"github.com/dendrascience/wordclass/internal/metrics"
	"github.com/dendrascience/wordclass/segment"
)

var (
	// ErrNoFiles is returned when Run is given an empty file list.
	ErrNoFiles = errors.New("pipeline: no input files")

	// ErrInvalidWorkers is returned for a worker count below 1.
	ErrInvalidWorkers = errors.New("pipeline: workers must be greater than 0")
)

// DefaultWorkers is the default size of the analyzer pool.
const DefaultWorkers = 8

// Settings configures a run. The zero value uses the defaults.
type Settings struct {
	Workers       int
	QueueCapacity int
	Segment       []segment.Option

	// RunID tags log records and the result. A random one is generated
	// when zero.
	RunID  uuid.UUID
	Logger *slog.Logger

	// Metrics, if set, receives per-chunk and per-boundary observations.
	Metrics *metrics.Metrics

	// OnWorkerDone, if set, is called from the worker goroutine as each
	// worker runs out of chunks.
	OnWorkerDone func(classify.Summary)
}

// Result is the outcome of a run.
type Result struct {
	RunID     uuid.UUID
	Files     []aggregate.FileStats // in input order
	Workers   []classify.Summary    // sorted by worker ID
	Chunks    int64
	HighWater int
	Elapsed   time.Duration
}

// Run counts words in files and returns per-file totals.
//
// Unreadable files are skipped and flagged in the result; they do not make
// Run fail. ctx is checked once before any goroutine starts. Once the
// pipeline is running it always drains the whole stream.
func Run(ctx context.Context, files []string, st Settings) (Result, error) {
	if len(files) == 0 {
		return Result{}, ErrNoFiles
	}
	if st.Workers == 0 {
		st.Workers = DefaultWorkers
	}
	if st.Workers < 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidWorkers, st.Workers)
	}
	if st.QueueCapacity == 0 {
		st.QueueCapacity = fifo.DefaultCapacity
	}
	if st.RunID == uuid.Nil {
		st.RunID = uuid.New()
	}
	logger := st.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	q, err := fifo.New(st.QueueCapacity)
	if err != nil {
		return Result{}, err
	}
	table := aggregate.New(files)

	opts := append(slices.Clip(st.Segment), segment.WithLogger(logger))
	var skip segment.Skipper = table
	if st.Metrics != nil {
		st.Metrics.WatchQueue(q)
		opts = append(opts, segment.WithObserver(st.Metrics.ObserveBoundary))
		skip = meteredSkipper{table, st.Metrics}
	}
	seg, err := segment.New(opts...)
	if err != nil {
		return Result{}, err
	}

	logger.Info("run started",
		slog.Int("files", len(files)),
		slog.Int("workers", st.Workers),
		slog.Int("queue", st.QueueCapacity),
		slog.String("policy", seg.Policy().String()))

	start := time.Now()
	summaries := make(chan classify.Summary, st.Workers)

	var g errgroup.Group
	for i := 1; i <= st.Workers; i++ {
		w := &classify.Worker{
			ID:     i,
			Source: q,
			Sink:   table,
			Logger: logger,
		}
		if st.Metrics != nil {
			m := st.Metrics
			w.OnChunk = func(id int, c chunk.Chunk, counts classify.Counts) {
				m.ObserveChunk(id, c, counts.Words)
			}
		}
		g.Go(func() error {
			s := w.Run()
			if st.OnWorkerDone != nil {
				st.OnWorkerDone(s)
			}
			summaries <- s
			return nil
		})
	}
	g.Go(func() error {
		return seg.Run(files, q, skip)
	})

	err = g.Wait()
	close(summaries)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("segmenting input: %w", err)
	}

	res := Result{
		RunID:     st.RunID,
		Files:     table.Report(),
		Chunks:    q.Enqueued(),
		HighWater: q.HighWater(),
		Elapsed:   elapsed,
	}
	for s := range summaries {
		res.Workers = append(res.Workers, s)
	}
	slices.SortFunc(res.Workers, func(a, b classify.Summary) int { return a.ID - b.ID })

	if st.Metrics != nil {
		st.Metrics.Finish(st.Workers, elapsed)
	}
	logger.Info("run finished",
		slog.Int64("chunks", res.Chunks),
		slog.Int("queue_high_water", res.HighWater),
		slog.Duration("elapsed", elapsed))
	return res, nil
}

type meteredSkipper struct {
	table *aggregate.Table
	m     *metrics.Metrics
}

func (s meteredSkipper) Skip(fileID int, err error) {
	s.table.Skip(fileID, err)
	s.m.FileSkipped()
}
