// Package aggregate accumulates per-file word statistics from concurrent
// workers.
package aggregate

import (
	"sync"

	"github.com/dendrascience/wordclass/classify"
)

// FileStats is the running total for one input file.
type FileStats struct {
	Name    string
	Counts  classify.Counts
	Chunks  int
	Skipped bool
	Err     error // why the file was skipped
}

// Table holds one FileStats per input file, indexed by file ID.
type Table struct {
	mu    sync.Mutex
	files []FileStats
}

// New returns a table sized for names, in the same order.
func New(names []string) *Table {
	files := make([]FileStats, len(names))
	for i, n := range names {
		files[i] = FileStats{Name: n, Counts: classify.Counts{FileID: i}}
	}
	return &Table{files: files}
}

// Merge adds c to the running total of c.FileID. Merging is a plain sum, so
// the order in which workers call it does not affect the result.
func (t *Table) Merge(c classify.Counts) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := &t.files[c.FileID]
	f.Counts.Add(c)
	f.Chunks++
}

// Skip records that fileID could not be processed.
func (t *Table) Skip(fileID int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files[fileID].Skipped = true
	t.files[fileID].Err = err
}

// Report returns a copy of every file's totals in file ID order.
//
// Report must only be called after all workers have returned; it is not
// meant to observe a run in progress.
func (t *Table) Report() []FileStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]FileStats, len(t.files))
	copy(out, t.files)
	return out
}

// Len returns the number of files in the table.
func (t *Table) Len() int {
	return len(t.files)
}
