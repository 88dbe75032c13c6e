package segment

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/wordclass/charclass"
	"github.com/dendrascience/wordclass/chunk"
	"github.com/dendrascience/wordclass/classify"
)

var vocabulary = []string{
	"água", "coração", "pão", "é", "não", "d'ouro", "rock’n’roll", "_id",
	"açúcar", "Ýmir", "ÿ", "olá", "bem", "x",
}

var separators = []string{" ", " ", " ", "\n", ", ", ". ", "—", "… ", "«", "» ", "“", "” "}

func randomText(seed int64, words int) []byte {
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder
	for i := 0; i < words; i++ {
		b.WriteString(vocabulary[rng.Intn(len(vocabulary))])
		b.WriteString(separators[rng.Intn(len(separators))])
	}
	return []byte(b.String())
}

func split(t *testing.T, input []byte, opts ...Option) ([]chunk.Chunk, []Boundary) {
	t.Helper()
	var bounds []Boundary
	s, err := New(append(opts, WithObserver(func(b Boundary) { bounds = append(bounds, b) }))...)
	require.NoError(t, err)

	var chunks []chunk.Chunk
	err = s.Split(bytes.NewReader(input), 5, func(c chunk.Chunk) error {
		chunks = append(chunks, c)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, bounds, len(chunks))
	return chunks, bounds
}

func TestSplit_Reconstructs(t *testing.T) {
	input := randomText(1, 5000)

	tests := []struct {
		name   string
		target int
		max    int
		policy Policy
	}{
		{"word aware defaults", chunk.DefaultTargetSize, chunk.DefaultMaxSize, WordAware},
		{"strict defaults", chunk.DefaultTargetSize, chunk.DefaultMaxSize, Strict},
		{"word aware tiny", 3, 5, WordAware},
		{"strict tiny", 3, 5, Strict},
		{"strict one byte", 1, 4, Strict},
		{"word aware odd", 17, 40, WordAware},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, bounds := split(t, input,
				WithTargetSize(tt.target), WithMaxSize(tt.max), WithPolicy(tt.policy))

			var rebuilt []byte
			var offset int64
			for i, c := range chunks {
				assert.Equal(t, 5, c.FileID)
				assert.Equal(t, i, c.Seq)
				assert.Equal(t, offset, bounds[i].Offset)
				assert.Equal(t, c.Len(), bounds[i].Size)
				assert.LessOrEqual(t, c.Len(), tt.max, "chunk %d", i)
				if c.Len() > 0 {
					assert.False(t, charclass.IsContinuation(c.Data[0]), "chunk %d starts inside a character", i)
				}
				rebuilt = append(rebuilt, c.Data...)
				offset += int64(c.Len())
			}
			assert.Equal(t, input, rebuilt)
		})
	}
}

func TestSplit_WordAwareCountsLikeWholeFile(t *testing.T) {
	input := randomText(2, 3000)
	whole := classify.Analyze(chunk.Chunk{Data: input})

	chunks, bounds := split(t, input, WithTargetSize(64), WithMaxSize(128))
	var sum classify.Counts
	for i, c := range chunks {
		assert.False(t, bounds[i].Splits, "chunk %d", i)
		assert.False(t, bounds[i].Forced, "chunk %d", i)
		sum.Add(classify.Analyze(c))
	}
	assert.Equal(t, whole.Words, sum.Words)
	assert.Equal(t, whole.Classes, sum.Classes)
}

func TestSplit_StraddlingWord(t *testing.T) {
	input := []byte("banana split")

	strict, sb := split(t, input, WithTargetSize(4), WithMaxSize(8), WithPolicy(Strict))
	require.Equal(t, "bana", string(strict[0].Data))
	assert.True(t, sb[0].Splits)

	var strictSum classify.Counts
	for _, c := range strict {
		strictSum.Add(classify.Analyze(c))
	}
	assert.Greater(t, strictSum.Words, 2, "strict counts the cut word twice")

	aware, ab := split(t, input, WithTargetSize(4), WithMaxSize(8), WithPolicy(WordAware))
	require.Equal(t, "banana ", string(aware[0].Data))
	assert.False(t, ab[0].Splits)

	var awareSum classify.Counts
	for _, c := range aware {
		awareSum.Add(classify.Analyze(c))
	}
	assert.Equal(t, 2, awareSum.Words)
}

func TestSplit_CutBeforeSeparatorDoesNotSplit(t *testing.T) {
	_, bounds := split(t, []byte("abcd efgh"), WithTargetSize(4), WithMaxSize(8), WithPolicy(Strict))
	require.NotEmpty(t, bounds)
	assert.False(t, bounds[0].Splits, "the word ends where the chunk ends")
}

func TestSplit_LongWordRespectsMax(t *testing.T) {
	input := bytes.Repeat([]byte("a"), 20000)
	chunks, bounds := split(t, input)

	require.Len(t, chunks, 4)
	for i, c := range chunks[:3] {
		assert.Equal(t, chunk.DefaultMaxSize, c.Len(), "chunk %d", i)
		assert.True(t, bounds[i].Forced)
		assert.True(t, bounds[i].Splits)
	}
	assert.Equal(t, 20000-3*chunk.DefaultMaxSize, chunks[3].Len())
	assert.False(t, bounds[3].Forced)
}

func TestSplit_LongAccentedWordKeepsCharactersWhole(t *testing.T) {
	// 2-byte characters against an odd max size.
	input := []byte(strings.Repeat("ã", 5000))
	chunks, _ := split(t, input, WithTargetSize(100), WithMaxSize(101))
	for i, c := range chunks {
		assert.LessOrEqual(t, c.Len(), 101)
		assert.Zero(t, c.Len()%2, "chunk %d cuts a character", i)
	}
}

func TestSplit_Empty(t *testing.T) {
	chunks, bounds := split(t, nil)
	require.Len(t, chunks, 1)
	assert.Zero(t, chunks[0].Len())
	assert.False(t, bounds[0].Splits)
}

func TestSplit_EmitError(t *testing.T) {
	s, err := New(WithTargetSize(2), WithMaxSize(4))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Split(strings.NewReader("abc def"), 0, func(chunk.Chunk) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnreadable)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestSplit_ReadError(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	err = s.Split(failingReader{}, 0, func(chunk.Chunk) error { return nil })
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestNew_Options(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"defaults", nil, nil},
		{"zero target", []Option{WithTargetSize(0)}, ErrInvalidTargetSize},
		{"negative max", []Option{WithMaxSize(-1)}, ErrInvalidMaxSize},
		{"max equals target", []Option{WithTargetSize(10), WithMaxSize(10)}, ErrMaxSizeTooSmall},
		{"target over default max", []Option{WithTargetSize(8000)}, ErrMaxSizeTooSmall},
		{"zero buffer", []Option{WithBufferSize(0)}, ErrInvalidBufferSize},
		{"bad policy", []Option{WithPolicy(Policy(9))}, ErrInvalidPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.opts...)
			if tt.want == nil {
				require.NoError(t, err)
				assert.Equal(t, WordAware, s.Policy())
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"word", WordAware, false},
		{"Word-Aware", WordAware, false},
		{"strict", Strict, false},
		{" STRICT ", Strict, false},
		{"fuzzy", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}

	var p Policy
	require.NoError(t, p.Set("strict"))
	assert.Equal(t, Strict, p)
	assert.Equal(t, "policy", p.Type())
}

func mustParse(t *testing.T, s string) Policy {
	t.Helper()
	p, err := ParsePolicy(s)
	require.NoError(t, err)
	return p
}

func TestLayout(t *testing.T) {
	input := randomText(3, 400)
	bounds, err := Layout(bytes.NewReader(input), WithTargetSize(32), WithMaxSize(64), WithPolicy(Strict))
	require.NoError(t, err)
	require.NotEmpty(t, bounds)

	var total int
	for _, b := range bounds {
		total += b.Size
	}
	assert.Equal(t, len(input), total)

	_, err = Layout(bytes.NewReader(input), WithTargetSize(0))
	assert.ErrorIs(t, err, ErrInvalidTargetSize)
}

type recordingQueue struct {
	chunks []chunk.Chunk
	last   []bool
	closed int
	err    error
}

func (q *recordingQueue) Enqueue(c chunk.Chunk, last bool) error {
	if q.err != nil {
		return q.err
	}
	q.chunks = append(q.chunks, c)
	q.last = append(q.last, last)
	return nil
}

func (q *recordingQueue) Close() { q.closed++ }

type recordingSkipper map[int]error

func (s recordingSkipper) Skip(id int, err error) { s[id] = err }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.txt", "banana split banana split"),
		filepath.Join(dir, "missing.txt"),
		writeFile(t, dir, "empty.txt", ""),
		dir, // a directory opens but cannot be read
	}

	s, err := New(WithTargetSize(4), WithMaxSize(16))
	require.NoError(t, err)

	q := &recordingQueue{}
	skipped := recordingSkipper{}
	require.NoError(t, s.Run(files, q, skipped))

	require.NotEmpty(t, q.chunks)
	for i, last := range q.last {
		assert.Equal(t, i == len(q.last)-1, last, "chunk %d", i)
	}
	assert.Zero(t, q.closed, "the last chunk closes the queue")

	final := q.chunks[len(q.chunks)-1]
	assert.Equal(t, 2, final.FileID, "empty file still yields a chunk")
	assert.Zero(t, final.Len())

	assert.Len(t, skipped, 2)
	assert.ErrorIs(t, skipped[1], ErrUnreadable)
	assert.ErrorIs(t, skipped[1], os.ErrNotExist)
	assert.ErrorIs(t, skipped[3], ErrUnreadable)

	var rebuilt []byte
	for _, c := range q.chunks {
		if c.FileID == 0 {
			rebuilt = append(rebuilt, c.Data...)
		}
	}
	assert.Equal(t, "banana split banana split", string(rebuilt))
}

func TestRun_AllMissingClosesQueue(t *testing.T) {
	dir := t.TempDir()
	s, err := New()
	require.NoError(t, err)

	q := &recordingQueue{}
	skipped := recordingSkipper{}
	require.NoError(t, s.Run([]string{filepath.Join(dir, "x"), filepath.Join(dir, "y")}, q, skipped))

	assert.Empty(t, q.chunks)
	assert.Equal(t, 1, q.closed)
	assert.Len(t, skipped, 2)
}

func TestRun_QueueFailureClosesQueue(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeFile(t, dir, "a.txt", strings.Repeat("abc ", 100))}

	s, err := New(WithTargetSize(4), WithMaxSize(8))
	require.NoError(t, err)

	boom := errors.New("queue gone")
	q := &recordingQueue{err: boom}
	err = s.Run(files, q, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, q.closed)
}
