package segment

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dendrascience/wordclass/chunk"
)

var (
	// ErrInvalidTargetSize is returned when targetSize is 0 or negative.
	ErrInvalidTargetSize = errors.New("targetSize must be greater than 0")

	// ErrInvalidMaxSize is returned when maxSize is 0 or negative.
	ErrInvalidMaxSize = errors.New("maxSize must be greater than 0")

	// ErrMaxSizeTooSmall is returned when maxSize is not greater than targetSize.
	ErrMaxSizeTooSmall = errors.New("maxSize must be greater than targetSize")

	// ErrInvalidBufferSize is returned when bufferSize is 0 or negative.
	ErrInvalidBufferSize = errors.New("bufferSize must be greater than 0")

	// ErrInvalidPolicy is returned for an unknown chunk policy.
	ErrInvalidPolicy = errors.New("unknown chunk policy")
)

// DefaultBufferSize is the default read buffer per file (64 KiB).
const DefaultBufferSize = 64 * 1024

// Policy decides where a chunk may end.
type Policy int

const (
	// WordAware flushes only once the target size is reached and the
	// scanner is outside a word. A word is cut only when keeping it whole
	// would exceed the max size.
	WordAware Policy = iota

	// Strict flushes as soon as the target size is reached, even in the
	// middle of a word. A word cut this way is counted once in each chunk.
	Strict
)

func (p Policy) String() string {
	switch p {
	case WordAware:
		return "word"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses the names printed by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "word-aware", "wordaware":
		return WordAware, nil
	case "strict":
		return Strict, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Set implements pflag.Value.
func (p *Policy) Set(s string) error {
	v, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value.
func (p *Policy) Type() string {
	return "policy"
}

// Option is a function that configures a Segmenter.
type Option func(*config) error

type config struct {
	targetSize int
	maxSize    int
	policy     Policy
	bufferSize int
	logger     *slog.Logger
	observer   func(Boundary)
}

func defaultConfig() config {
	return config{
		targetSize: chunk.DefaultTargetSize,
		maxSize:    chunk.DefaultMaxSize,
		policy:     WordAware,
		bufferSize: DefaultBufferSize,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// validate checks the options against each other.
func (c *config) validate() error {
	if c.maxSize <= c.targetSize {
		return fmt.Errorf("%w: maxSize (%d), targetSize (%d)", ErrMaxSizeTooSmall, c.maxSize, c.targetSize)
	}
	if c.policy != WordAware && c.policy != Strict {
		return fmt.Errorf("%w: %d", ErrInvalidPolicy, int(c.policy))
	}
	return nil
}

// WithTargetSize sets the soft size at which a chunk may be flushed.
func WithTargetSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return ErrInvalidTargetSize
		}
		c.targetSize = size
		return nil
	}
}

// WithMaxSize sets the hard size a chunk never grows past.
func WithMaxSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return ErrInvalidMaxSize
		}
		c.maxSize = size
		return nil
	}
}

// WithPolicy selects the flush policy.
func WithPolicy(p Policy) Option {
	return func(c *config) error {
		c.policy = p
		return nil
	}
}

// WithBufferSize sets the read buffer used for each file.
func WithBufferSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return ErrInvalidBufferSize
		}
		c.bufferSize = size
		return nil
	}
}

// WithLogger sets the logger used for per-file diagnostics. A nil logger
// keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithObserver registers fn to be called with every chunk boundary, in
// order, before the chunk is handed on.
func WithObserver(fn func(Boundary)) Option {
	return func(c *config) error {
		c.observer = fn
		return nil
	}
}
