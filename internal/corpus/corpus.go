// Package corpus generates synthetic text for the seed command and for
// tests. Output is fully determined by the seed.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Words used to build sentences. They cover every vowel class, the common
// diacritics, the cedilla, connectors and the joiner.
var vocabulary = []string{
	"água", "coração", "pão", "não", "maçã", "açúcar", "é", "até", "você",
	"avó", "avô", "pôr", "lições", "ação", "três", "país", "saúde", "Ásia",
	"Évora", "Ílhavo", "Óbidos", "Úrsula", "Ýmir", "ÿ", "yoga", "byte",
	"d'água", "d'ouro", "rock’n’roll", "snake_case", "_interno",
	"casa", "mesa", "livro", "rio", "sol", "lua", "gato", "cão", "muito",
	"bem", "que", "um", "uma", "de", "em", "por", "para", "com", "sem",
	"2024", "x",
}

var (
	inline    = []string{" ", " ", " ", " ", ", ", "; ", ": ", " - ", " — ", " – "}
	enders    = []string{". ", "! ", "? ", "… "}
	openQuote = []string{"“", "«", "(", "\""}
	endQuote  = map[string]string{"“": "”", "«": "»", "(": ")", "\"": "\""}
)

// Generator writes pseudo-random sentences.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Sentence returns one sentence including its trailing punctuation.
func (g *Generator) Sentence() string {
	var b strings.Builder
	n := 3 + g.rng.Intn(12)
	quote := ""
	for i := 0; i < n; i++ {
		if quote == "" && g.rng.Intn(20) == 0 {
			quote = openQuote[g.rng.Intn(len(openQuote))]
			b.WriteString(quote)
		}
		b.WriteString(vocabulary[g.rng.Intn(len(vocabulary))])
		if quote != "" && g.rng.Intn(3) == 0 {
			b.WriteString(endQuote[quote])
			quote = ""
		}
		if i < n-1 {
			b.WriteString(inline[g.rng.Intn(len(inline))])
		}
	}
	if quote != "" {
		b.WriteString(endQuote[quote])
	}
	b.WriteString(enders[g.rng.Intn(len(enders))])
	return b.String()
}

// WriteText writes at least size bytes of text to w, ending on a whole
// sentence. Paragraphs are separated by blank lines.
func (g *Generator) WriteText(w io.Writer, size int) (int, error) {
	bw := bufio.NewWriter(w)
	var written int
	for written < size {
		s := g.Sentence()
		if g.rng.Intn(8) == 0 {
			s += "\n\n"
		}
		n, err := bw.WriteString(s)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// Text returns at least size bytes of text.
func (g *Generator) Text(size int) []byte {
	var b strings.Builder
	_, _ = g.WriteText(&b, size)
	return []byte(b.String())
}

// WriteFiles creates count text files of roughly size bytes each in dir
// and returns their paths. File names are UUIDs derived from the seed, so
// the same seed always produces the same tree.
func (g *Generator) WriteFiles(dir string, count, size int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			return paths, fmt.Errorf("failed to generate file name: %w", err)
		}
		path := filepath.Join(dir, id.String()+".txt")
		if err := g.writeFile(path, size); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *Generator) writeFile(path string, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := g.WriteText(f, size); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
