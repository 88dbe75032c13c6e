package segment

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/dendrascience/wordclass/charclass"
	"github.com/dendrascience/wordclass/chunk"
	"github.com/dendrascience/wordclass/classify"
)

// ErrUnreadable wraps every error caused by a file that could not be opened
// or read. Run skips such files instead of failing.
var ErrUnreadable = errors.New("segment: file unreadable")

// Enqueuer is the producer side of the chunk queue.
type Enqueuer interface {
	Enqueue(c chunk.Chunk, last bool) error
	Close()
}

// Skipper records files that had to be skipped.
type Skipper interface {
	Skip(fileID int, err error)
}

// Boundary describes one chunk as it was cut.
type Boundary struct {
	FileID int
	Seq    int
	Offset int64 // of the first byte within the file
	Size   int

	// Splits is true when the chunk ends in the middle of a word, so the
	// word will be counted once on each side.
	Splits bool

	// Forced is true when the chunk was flushed early because the next
	// character would have pushed it past the max size.
	Forced bool
}

// Segmenter cuts byte streams into chunks.
type Segmenter struct {
	cfg config
}

// New returns a Segmenter configured by opts.
func New(opts ...Option) (*Segmenter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Segmenter{cfg: cfg}, nil
}

// Policy returns the configured flush policy.
func (s *Segmenter) Policy() Policy {
	return s.cfg.policy
}

// Run segments every file in order and feeds the chunks to q.
//
// The last chunk of the last readable file is enqueued with last set, which
// closes the queue. When no file produced a chunk the queue is closed
// explicitly, so consumers always see the end of the stream. Files that
// cannot be opened or read are logged, reported to skip and otherwise
// ignored. Any other error closes the queue and is returned.
func (s *Segmenter) Run(files []string, q Enqueuer, skip Skipper) error {
	var (
		pending chunk.Chunk
		held    bool
	)
	// Hold one chunk back so the final one can carry the end marker.
	emit := func(c chunk.Chunk) error {
		if held {
			if err := q.Enqueue(pending, false); err != nil {
				return err
			}
		}
		pending, held = c, true
		return nil
	}

	for id, name := range files {
		err := s.segmentFile(id, name, emit)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrUnreadable) {
			q.Close()
			return err
		}
		s.cfg.logger.Warn("skipping file",
			slog.String("file", name),
			slog.Any("error", err))
		if skip != nil {
			skip.Skip(id, err)
		}
	}

	if !held {
		q.Close()
		return nil
	}
	return q.Enqueue(pending, true)
}

func (s *Segmenter) segmentFile(id int, name string, emit func(chunk.Chunk) error) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	var (
		chunks int
		bytes  int64
	)
	err = s.Split(f, id, func(c chunk.Chunk) error {
		chunks++
		bytes += int64(c.Len())
		return emit(c)
	})
	if err != nil {
		return err
	}
	s.cfg.logger.Debug("file segmented",
		slog.String("file", name),
		slog.Int("chunks", chunks),
		slog.Int64("bytes", bytes))
	return nil
}

// Split reads r to the end and passes each chunk to emit, in order. The
// chunks concatenate back to the bytes of r, none of them splits a
// multi-byte character, and at least one chunk is emitted even for empty
// input.
//
// Read errors are wrapped with ErrUnreadable. Errors from emit are returned
// unchanged.
func (s *Segmenter) Split(r io.Reader, fileID int, emit func(chunk.Chunk) error) error {
	var (
		br     = bufio.NewReaderSize(r, s.cfg.bufferSize)
		m      classify.Machine
		buf    = s.newBuf()
		seq    int
		offset int64
		group  [utf8.UTFMax]byte
	)

	flush := func(forced, splits bool) error {
		c := chunk.Chunk{FileID: fileID, Seq: seq, Data: buf}
		if s.cfg.observer != nil {
			s.cfg.observer(Boundary{
				FileID: fileID,
				Seq:    seq,
				Offset: offset,
				Size:   len(buf),
				Splits: splits,
				Forced: forced,
			})
		}
		seq++
		offset += int64(len(buf))
		buf = s.newBuf()
		return emit(c)
	}

	for {
		lead, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnreadable, err)
		}

		g := group[:1]
		g[0] = lead
		for n := charclass.SequenceLen(lead); len(g) < n; {
			next, err := br.Peek(1)
			if err != nil || !charclass.IsContinuation(next[0]) {
				break
			}
			g = append(g, next[0])
			_, _ = br.Discard(1)
		}

		if len(buf) > 0 && len(buf)+len(g) > s.cfg.maxSize {
			first, _ := charclass.Decode(g)
			if err := flush(true, m.InWord() && first.Kind != charclass.Separator); err != nil {
				return err
			}
		}

		buf = append(buf, g...)
		for p := g; len(p) > 0; {
			ch, n := charclass.Decode(p)
			p = p[n:]
			m.Feed(ch)
		}

		if len(buf) < s.cfg.targetSize {
			continue
		}
		if s.cfg.policy == Strict || !m.InWord() {
			if err := flush(false, m.InWord() && continuesWord(br)); err != nil {
				return err
			}
		}
	}

	if len(buf) > 0 || seq == 0 {
		return flush(false, false)
	}
	return nil
}

func (s *Segmenter) newBuf() []byte {
	return make([]byte, 0, min(s.cfg.targetSize+utf8.UTFMax, s.cfg.maxSize))
}

// continuesWord reports whether the next unread character would keep the
// scanner inside the current word.
func continuesWord(br *bufio.Reader) bool {
	p, _ := br.Peek(1)
	if len(p) == 0 {
		return false
	}
	p, _ = br.Peek(charclass.SequenceLen(p[0]))
	ch, _ := charclass.Decode(p)
	return ch.Kind != charclass.Separator
}

// Layout runs a Segmenter over r and returns every boundary it cut,
// without keeping the chunk data.
func Layout(r io.Reader, opts ...Option) ([]Boundary, error) {
	var out []Boundary
	s, err := New(append(slices.Clip(opts), WithObserver(func(b Boundary) {
		out = append(out, b)
	}))...)
	if err != nil {
		return nil, err
	}
	err = s.Split(r, 0, func(chunk.Chunk) error { return nil })
	return out, err
}
