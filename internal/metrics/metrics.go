// Package metrics collects Prometheus metrics for a counting run.
//
// There is no HTTP listener. The collectors live in a private registry that
// is written once, at the end of the run, in the node_exporter textfile
// format so a cron job or the textfile collector can pick it up.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dendrascience/wordclass/chunk"
	"github.com/dendrascience/wordclass/segment"
)

const namespace = "wordclass"

// QueueStats is the read-only view of the chunk queue exported as gauges.
type QueueStats interface {
	Len() int
	Cap() int
	HighWater() int
}

// Metrics holds every collector of a run.
type Metrics struct {
	reg *prometheus.Registry

	// ChunksTotal counts chunks analyzed.
	// Labels: worker
	ChunksTotal *prometheus.CounterVec

	// BytesTotal counts bytes analyzed.
	BytesTotal prometheus.Counter

	// WordsTotal counts words found, including words counted twice because
	// a chunk boundary cut them.
	WordsTotal prometheus.Counter

	// ChunkBytes is the distribution of chunk sizes as cut.
	ChunkBytes prometheus.Histogram

	// BoundariesTotal counts chunk boundaries by kind.
	// Labels: kind (clean, split, forced)
	BoundariesTotal *prometheus.CounterVec

	// FilesSkippedTotal counts files that could not be read.
	FilesSkippedTotal prometheus.Counter

	// Workers is the size of the worker pool.
	Workers prometheus.Gauge

	// RunSeconds is the wall time of the last run.
	RunSeconds prometheus.Gauge
}

// New creates the collectors in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		ChunksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Chunks analyzed, by worker.",
		}, []string{"worker"}),
		BytesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Bytes analyzed.",
		}),
		WordsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_total",
			Help:      "Words found across all files.",
		}),
		ChunkBytes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_bytes",
			Help:      "Size of the chunks produced by the segmenter.",
			Buckets:   []float64{256, 1024, 2048, chunk.DefaultTargetSize, 5000, chunk.DefaultMaxSize},
		}),
		BoundariesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segment",
			Name:      "boundaries_total",
			Help:      "Chunk boundaries by kind.",
		}, []string{"kind"}),
		FilesSkippedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Input files that could not be opened or read.",
		}),
		Workers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Size of the analyzer pool.",
		}),
		RunSeconds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run.",
		}),
	}
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// WatchQueue exports the occupancy of q. Call it once per run.
func (m *Metrics) WatchQueue(q QueueStats) {
	f := promauto.With(m.reg)
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "queue",
		Name:      "depth",
		Help:      "Chunks waiting in the queue.",
	}, func() float64 { return float64(q.Len()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "queue",
		Name:      "high_water",
		Help:      "Largest queue occupancy seen.",
	}, func() float64 { return float64(q.HighWater()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "queue",
		Name:      "capacity",
		Help:      "Number of queue slots.",
	}, func() float64 { return float64(q.Cap()) })
}

// ObserveChunk records one analyzed chunk.
func (m *Metrics) ObserveChunk(worker int, c chunk.Chunk, words int) {
	m.ChunksTotal.WithLabelValues(strconv.Itoa(worker)).Inc()
	m.BytesTotal.Add(float64(c.Len()))
	m.WordsTotal.Add(float64(words))
}

// ObserveBoundary records one chunk as the segmenter cut it.
func (m *Metrics) ObserveBoundary(b segment.Boundary) {
	m.ChunkBytes.Observe(float64(b.Size))
	kind := "clean"
	switch {
	case b.Forced:
		kind = "forced"
	case b.Splits:
		kind = "split"
	}
	m.BoundariesTotal.WithLabelValues(kind).Inc()
}

// FileSkipped records one unreadable file.
func (m *Metrics) FileSkipped() {
	m.FilesSkippedTotal.Inc()
}

// Finish records the run-wide gauges.
func (m *Metrics) Finish(workers int, elapsed time.Duration) {
	m.Workers.Set(float64(workers))
	m.RunSeconds.Set(elapsed.Seconds())
}

// WriteFile writes every metric to path in the text exposition format. The
// file is replaced atomically.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
